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

// Package digest produces cryptographic hashes of the video and audio output
// of an emulation. Each frame's hash is chained with the hash of the previous
// frame, so the final value depends on every frame and on the order of the
// frames.
//
// The hashes are used to check that two runs with identical inputs produce
// identical output.
package digest

// Digest implementations return the current hash value with Hash(). How the
// hash is generated depends on the implementation.
type Digest interface {
	Hash() string
	ResetDigest()
}
