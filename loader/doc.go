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

// Package loader reads media from a filesystem and attaches it to the
// emulated machine. The kind of media is decided by the filename extension
// unless it is given explicitly:
//
//	ld, err := loader.NewLoader(fs, "games/manic.wav", "AUTO")
//	if err != nil {
//		return err
//	}
//	err = ld.Attach(u)
//
// ROM images are loaded into the ROM banks of the machine, 16K at a time.
// Screen dumps are copied into the screen bank. Tapes are decoded from PCM
// audio and attached to the bus as a tape.Player. DOCK cartridges are only
// accepted by machines with an SCLD. Snapshots are decoded with the snapshot
// package and plumbed into the ULA.
package loader
