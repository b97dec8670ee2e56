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

// Package paths contains functions to prepare paths to ZXchip resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the preferences file.
//
//	pth, err := paths.ResourcePath(fs, "", prefs.DefaultPrefsFile)
//
// For development builds the config directory is ".zxchip" in the current
// working directory. For release builds (built with the "release" tag) the
// directory is "zxchip" in the user's config directory, as reported by
// os.UserConfigDir().
//
// Directories are created on the supplied afero.Fs as required.
package paths
