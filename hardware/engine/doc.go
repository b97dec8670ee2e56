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

// Package engine contains stepping engines that drive the ULA without a full
// CPU emulation.
//
// The Halt engine behaves like a CPU that has executed a HALT instruction with
// interrupts enabled and an interrupt routine of EI followed by RET. This is
// the state most programs spend their idle time in and it exercises the
// interrupt, stack and refresh behaviour of the chipset.
//
// The Script engine plays a fixed list of cycles, one instruction at a time.
// It is used for testing timing sensitive behaviour where the exact sequence
// of cycles must be known.
package engine
