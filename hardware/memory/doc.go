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

// Package memory implements the paged memory of the ZX Spectrum family.
//
// The 64K address space is divided into eight slots of 8K. Each slot is
// assigned to a page of ROM, RAM or, on machines with the SCLD, the EXROM or
// DOCK. The standard machines only ever page in 16K units and so assign two
// consecutive slots at a time.
//
//	0x0000  slot 0 \  ROM
//	0x2000  slot 1 /
//	0x4000  slot 2 \  RAM (screen)
//	0x6000  slot 3 /
//	0x8000  slot 4 \  RAM
//	0xa000  slot 5 /
//	0xc000  slot 6 \  RAM (paged on the 128K)
//	0xe000  slot 7 /
//
// The assignment of slots is made by a Pager. Paging registers only ever
// change the assignment of slots and never the contents of a page. Register
// values are never rejected. Bits that the hardware does not decode are
// ignored.
//
// The memory package knows nothing about timing. Contention delays are
// applied by the ULA using the contention package and IsContended().
package memory
