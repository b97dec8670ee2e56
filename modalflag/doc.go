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

// Package modalflag parses command lines made of nested modes, each with its
// own flags. For example:
//
//	zxchip -statsview RENDER -frames 50 -model 128k game.wav
//
// The top level flags are parsed first. The first remaining argument is then
// checked against the list of sub-modes and, if it matches, the flags that
// follow it are parsed in turn:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TERM", "RENDER", "DUMP")
//	statsview := md.AddBool("statsview", false, "run stats server")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RENDER":
//		md.NewMode()
//		frames := md.AddInt("frames", 1, "number of frames")
//		...
//	}
//
// The first sub-mode in the list is the default and is selected when no
// sub-mode is named on the command line. Sub-mode names are not case
// sensitive.
//
// Help is printed to Output when the -help flag is seen. The help lists the
// flags and sub-modes of the current mode along with any text supplied with
// AdditionalHelp().
package modalflag
