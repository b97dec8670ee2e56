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

// Package variants is the home of the chipset variants. Each variant is in
// its own sub-package and wraps a *ula.ULA, installing itself through the
// hooks provided by the ula package:
//
//	ula.PortInterceptor
//	ula.InterruptMask
//	ula.Decoding
//	video.Colours
//	video.Layout
//
// A variant holds only the state that it adds to the chipset. Everything
// else is owned by the ULA.
package variants
