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
	"path"

	"github.com/spf13/afero"
)

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with OS/build specific paths.
//
// The subPth argument is created as a directory on the filesystem if it does
// not already exist. The file argument is not created.
//
// Both arguments can be empty.
func ResourcePath(fs afero.Fs, subPth string, file string) (string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	basePath, err := getBasePath(fs, subPth)
	if err != nil {
		return "", err
	}

	return path.Join(basePath, file), nil
}
