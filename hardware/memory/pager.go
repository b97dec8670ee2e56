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

package memory

// Pager implementations assign pages to slots according to the current value
// of the paging registers.
type Pager interface {
	String() string

	// whether the RAM bank is in contended memory
	Contended(bank int) bool

	// apply the registers to the slot assignments
	Apply(mem *Memory)
}

// Pager48 is used by the 16K and 48K machines. There is no paging register.
// On the 16K machine the upper 32K is unmapped.
type Pager48 struct{}

func (Pager48) String() string {
	return "48K"
}

// Contended implements the Pager interface.
func (Pager48) Contended(bank int) bool {
	return bank == 0
}

// Apply implements the Pager interface.
func (Pager48) Apply(mem *Memory) {
	mem.map16K(0, ROM, 0)
	for i := 1; i < 4; i++ {
		if i-1 < len(mem.RAM) {
			mem.map16K(i, RAM, i-1)
		} else {
			mem.map16K(i, Unmapped, 0)
		}
	}
	mem.Screen = 0
}

// Port7FFD bits used by Pager128.
const (
	Page128Bank   = 0x07
	Page128Shadow = 0x08
	Page128ROM    = 0x10
	Page128Lock   = 0x20

	// bits that are not decoded by the 128K
	Page128Unused = 0xc0
)

// Pager128 is used by the 128K machine. The paging register is at port 0x7ffd.
type Pager128 struct{}

func (Pager128) String() string {
	return "128K"
}

// Contended implements the Pager interface. Odd numbered banks are contended.
func (Pager128) Contended(bank int) bool {
	return bank&0x01 == 0x01
}

// Apply implements the Pager interface.
func (Pager128) Apply(mem *Memory) {
	r := mem.Registers.Port7FFD
	rom := 0
	if r&Page128ROM == Page128ROM {
		rom = 1 % len(mem.ROM)
	}
	mem.map16K(0, ROM, rom)
	mem.map16K(1, RAM, 5)
	mem.map16K(2, RAM, 2)
	mem.map16K(3, RAM, int(r&Page128Bank))
	if r&Page128Shadow == Page128Shadow {
		mem.Screen = 7
	} else {
		mem.Screen = 5
	}
}

// Write a value to the paging register. Returns false if the register is
// locked and the write was ignored.
func (p Pager128) Write(mem *Memory, v uint8) bool {
	if mem.Registers.Locked {
		return false
	}
	mem.Registers.Port7FFD = v &^ Page128Unused
	mem.Registers.Locked = v&Page128Lock == Page128Lock
	p.Apply(mem)
	return true
}

// Port1FFD bits used by PagerPlus3. In the special paging mode the
// configuration bits select one of four all-RAM arrangements. Otherwise the
// ROM high bit joins the 0x7ffd ROM bit to select one of four ROMs.
const (
	PagePlus3Special = 0x01
	PagePlus3Config  = 0x06
	PagePlus3ROMHi   = 0x04
	PagePlus3Motor   = 0x08
	PagePlus3Strobe  = 0x10
)

// RAM banks assigned to the four 16K regions by each special configuration.
var plus3Special = [4][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{4, 5, 6, 3},
	{4, 7, 6, 3},
}

// PagerPlus3 is used by the +2A and +3. The 0x7ffd register behaves as it
// does on the 128K. The second register is at port 0x1ffd.
type PagerPlus3 struct{}

func (PagerPlus3) String() string {
	return "+3"
}

// Contended implements the Pager interface. Banks four to seven are
// contended.
func (PagerPlus3) Contended(bank int) bool {
	return bank >= 4
}

// Apply implements the Pager interface.
func (PagerPlus3) Apply(mem *Memory) {
	r := mem.Registers.Port7FFD
	e := mem.Registers.Port1FFD

	if e&PagePlus3Special == PagePlus3Special {
		for i, b := range plus3Special[(e&PagePlus3Config)>>1] {
			mem.map16K(i, RAM, b)
		}
	} else {
		rom := int(r&Page128ROM)>>4 | int(e&PagePlus3ROMHi)>>1
		mem.map16K(0, ROM, rom%len(mem.ROM))
		mem.map16K(1, RAM, 5)
		mem.map16K(2, RAM, 2)
		mem.map16K(3, RAM, int(r&Page128Bank))
	}

	if r&Page128Shadow == Page128Shadow {
		mem.Screen = 7
	} else {
		mem.Screen = 5
	}
}

// Write a value to the 0x7ffd paging register. Returns false if the registers
// are locked and the write was ignored.
func (p PagerPlus3) Write(mem *Memory, v uint8) bool {
	if mem.Registers.Locked {
		return false
	}
	mem.Registers.Port7FFD = v &^ Page128Unused
	mem.Registers.Locked = v&Page128Lock == Page128Lock
	p.Apply(mem)
	return true
}

// WriteExt writes a value to the 0x1ffd paging register. The lock bit in the
// 0x7ffd register also locks this register.
func (p PagerPlus3) WriteExt(mem *Memory, v uint8) bool {
	if mem.Registers.Locked {
		return false
	}
	mem.Registers.Port1FFD = v
	p.Apply(mem)
	return true
}

// PagerSCLD is used by machines with the Timex SCLD. The home bank is the same
// as the 48K. Each slot can be switched to the DOCK or EXROM with the MMU
// register at port 0xf4.
type PagerSCLD struct{}

func (PagerSCLD) String() string {
	return "SCLD"
}

// Contended implements the Pager interface.
func (PagerSCLD) Contended(bank int) bool {
	return bank == 0
}

// Apply implements the Pager interface.
func (PagerSCLD) Apply(mem *Memory) {
	Pager48{}.Apply(mem)
	for i := 0; i < NumSlots; i++ {
		if mem.Registers.MMU&(1<<i) == 0 {
			continue
		}
		if mem.Registers.EXROM {
			mem.Slots[i] = Slot{Kind: EXROM}
		} else {
			mem.Slots[i] = Slot{Kind: DOCK, Offset: i * SlotSize}
		}
	}
}

// WriteMMU writes a value to the MMU register.
func (p PagerSCLD) WriteMMU(mem *Memory, v uint8) {
	mem.Registers.MMU = v
	p.Apply(mem)
}

// SelectEXROM chooses between the DOCK and the EXROM for slots that are
// switched away from the home bank.
func (p PagerSCLD) SelectEXROM(mem *Memory, exrom bool) {
	mem.Registers.EXROM = exrom
	p.Apply(mem)
}

// map16K assigns a 16K bank to two consecutive slots.
func (mem *Memory) map16K(n int, kind Kind, bank int) {
	mem.Slots[n*2] = Slot{Kind: kind, Bank: bank}
	mem.Slots[n*2+1] = Slot{Kind: kind, Bank: bank, Offset: SlotSize}
}
