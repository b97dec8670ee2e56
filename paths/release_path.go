//go:build release
// +build release

// This file is part of ZXchip.
//
// ZXchip is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXchip is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXchip.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path"

	"github.com/spf13/afero"
)

const zxchipConfigDir = "zxchip"

// the release version of getBasePath looks for and if necessary creates the
// zxchipConfigDir (and child directories) in the user's config directory.
func getBasePath(fs afero.Fs, subPth string) (string, error) {
	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	pth := path.Join(cnf, zxchipConfigDir, subPth)

	if ok, _ := afero.DirExists(fs, pth); ok {
		return pth, nil
	}

	if err := fs.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}

	return pth, nil
}
