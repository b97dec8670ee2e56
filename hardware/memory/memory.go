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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/specification"
)

// Sentinal error patterns.
const (
	ROMError = "memory: rom: %v"
	NoBank   = "memory: no such bank (%s %d)"

	// Incompatible is returned by Plumb() when the snapshot was taken from
	// a different memory configuration
	Incompatible = "memory: incompatible snapshot (%v)"
)

// Size of a slot and of a standard bank.
const (
	SlotSize = 0x2000
	BankSize = 0x4000
	NumSlots = 8
)

// Kind of memory assigned to a slot.
type Kind int

// List of valid Kind values.
const (
	Unmapped Kind = iota
	ROM
	RAM
	EXROM
	DOCK
)

func (k Kind) String() string {
	switch k {
	case ROM:
		return "ROM"
	case RAM:
		return "RAM"
	case EXROM:
		return "EXROM"
	case DOCK:
		return "DOCK"
	}
	return "unmapped"
}

// Page is a buffer of memory.
type Page struct {
	Kind      Kind
	Bank      int
	Contended bool
	Writable  bool
	Data      []uint8
}

// Slot records which page is assigned to an 8K region of the address space.
type Slot struct {
	Kind Kind
	Bank int

	// offset into the page's data of the start of the slot
	Offset int
}

// Registers holds the state of all paging registers. Not all registers are
// used by all pagers.
type Registers struct {
	// the 128K paging register at port 0x7ffd and whether it has been locked
	Port7FFD uint8
	Locked   bool

	// the second paging register of the +3 at port 0x1ffd
	Port1FFD uint8

	// the SCLD MMU at port 0xf4 and whether the EXROM is selected rather than
	// the DOCK (SCLD control register bit 7)
	MMU   uint8
	EXROM bool
}

// Memory owns the ROM and RAM banks and the assignment of slots.
type Memory struct {
	pager Pager

	ROM   []*Page
	RAM   []*Page
	EXROM *Page
	DOCK  *Page

	Slots [NumSlots]Slot

	// the RAM bank read by the video circuitry
	Screen int

	Registers Registers
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(spec *specification.Spec) *Memory {
	mem := &Memory{}

	for i := 0; i < spec.ROMs; i++ {
		mem.ROM = append(mem.ROM, &Page{Kind: ROM, Bank: i, Data: make([]uint8, BankSize)})
	}

	switch spec.Paging {
	case specification.Paging128K:
		mem.pager = Pager128{}
	case specification.PagingPlus3:
		mem.pager = PagerPlus3{}
	case specification.PagingSCLD:
		mem.pager = PagerSCLD{}
	default:
		mem.pager = Pager48{}
	}

	for i := 0; i < spec.RAMBanks; i++ {
		mem.RAM = append(mem.RAM, &Page{
			Kind:      RAM,
			Bank:      i,
			Contended: mem.pager.Contended(i),
			Writable:  true,
			Data:      make([]uint8, BankSize),
		})
	}

	if spec.Paging == specification.PagingSCLD {
		mem.EXROM = &Page{Kind: EXROM, Data: make([]uint8, SlotSize)}
		mem.DOCK = &Page{Kind: DOCK, Data: make([]uint8, SlotSize*NumSlots)}
		for i := range mem.EXROM.Data {
			mem.EXROM.Data[i] = 0xff
		}
		for i := range mem.DOCK.Data {
			mem.DOCK.Data[i] = 0xff
		}
	}

	mem.Reset()

	return mem
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	for i, sl := range mem.Slots {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%s%d", sl.Kind, sl.Bank))
	}
	return s.String()
}

// Pager returns the pager used by the memory.
func (mem *Memory) Pager() Pager {
	return mem.pager
}

// Reset the paging registers. The contents of RAM are not changed.
func (mem *Memory) Reset() {
	mem.Registers = Registers{}
	mem.pager.Apply(mem)
}

// Clear the contents of all RAM banks. If fill is not nil then it is used to
// initialise each bank.
func (mem *Memory) Clear(fill func([]uint8)) {
	for _, p := range mem.RAM {
		if fill != nil {
			fill(p.Data)
		} else {
			clear(p.Data)
		}
	}
}

// page returns the page referenced by the slot. returns nil if the slot is
// unmapped.
func (mem *Memory) page(sl Slot) *Page {
	switch sl.Kind {
	case ROM:
		return mem.ROM[sl.Bank]
	case RAM:
		return mem.RAM[sl.Bank]
	case EXROM:
		return mem.EXROM
	case DOCK:
		return mem.DOCK
	}
	return nil
}

// Read returns the value at the address. Unmapped addresses return 0xff.
func (mem *Memory) Read(addr uint16) uint8 {
	sl := mem.Slots[addr>>13]
	p := mem.page(sl)
	if p == nil {
		return 0xff
	}
	return p.Data[sl.Offset+int(addr&(SlotSize-1))]
}

// Write the value to the address. Writes to ROM and to unmapped addresses are
// ignored. For writes to RAM the bank and the offset into the bank is
// returned, which is needed by the video cache.
func (mem *Memory) Write(addr uint16, v uint8) (bank int, offset int, written bool) {
	sl := mem.Slots[addr>>13]
	p := mem.page(sl)
	if p == nil || !p.Writable {
		return -1, 0, false
	}
	offset = sl.Offset + int(addr&(SlotSize-1))
	p.Data[offset] = v
	return p.Bank, offset, true
}

// IsContended returns true if the address is in a slot assigned to contended
// memory.
func (mem *Memory) IsContended(addr uint16) bool {
	p := mem.page(mem.Slots[addr>>13])
	return p != nil && p.Contended
}

// ScreenBank sets the RAM bank read by the video circuitry.
func (mem *Memory) ScreenBank(n int) {
	mem.Screen = n % len(mem.RAM)
}

// ScreenData returns the contents of the RAM bank read by the video
// circuitry.
func (mem *Memory) ScreenData() []uint8 {
	return mem.RAM[mem.Screen].Data
}

// Peek returns the value at the address. There are no side-effects.
func (mem *Memory) Peek(addr uint16) uint8 {
	return mem.Read(addr)
}

// Poke writes the value at the address. Unlike Write() ROM can be changed with
// Poke(). Returns false if the address is unmapped.
func (mem *Memory) Poke(addr uint16, v uint8) bool {
	sl := mem.Slots[addr>>13]
	p := mem.page(sl)
	if p == nil {
		return false
	}
	p.Data[sl.Offset+int(addr&(SlotSize-1))] = v
	return true
}

// LoadROM copies data into the ROM bank. The data must not be larger than the
// bank. Smaller data is padded with 0xff.
func (mem *Memory) LoadROM(bank int, data []uint8) error {
	if bank < 0 || bank >= len(mem.ROM) {
		return curated.Errorf(NoBank, ROM, bank)
	}
	if len(data) > BankSize {
		return curated.Errorf(ROMError, fmt.Sprintf("too large for bank (%d bytes)", len(data)))
	}
	p := mem.ROM[bank]
	n := copy(p.Data, data)
	for i := n; i < len(p.Data); i++ {
		p.Data[i] = 0xff
	}
	return nil
}

// LoadDock copies data into the DOCK or EXROM. Only valid for memory with the
// SCLD pager.
func (mem *Memory) LoadDock(kind Kind, data []uint8) error {
	var p *Page
	switch kind {
	case DOCK:
		p = mem.DOCK
	case EXROM:
		p = mem.EXROM
	}
	if p == nil {
		return curated.Errorf(NoBank, kind, 0)
	}
	if len(data) > len(p.Data) {
		return curated.Errorf(ROMError, fmt.Sprintf("too large for %s (%d bytes)", kind, len(data)))
	}
	n := copy(p.Data, data)
	for i := n; i < len(p.Data); i++ {
		p.Data[i] = 0xff
	}
	return nil
}

// Snapshot creates a copy of the memory. The pages are deep copied.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	cp := func(p *Page) *Page {
		if p == nil {
			return nil
		}
		c := *p
		c.Data = make([]uint8, len(p.Data))
		copy(c.Data, p.Data)
		return &c
	}
	n.ROM = make([]*Page, len(mem.ROM))
	for i := range mem.ROM {
		n.ROM[i] = cp(mem.ROM[i])
	}
	n.RAM = make([]*Page, len(mem.RAM))
	for i := range mem.RAM {
		n.RAM[i] = cp(mem.RAM[i])
	}
	n.EXROM = cp(mem.EXROM)
	n.DOCK = cp(mem.DOCK)
	return &n
}

// Compatible returns true if the snapshot can be plumbed into this memory. The
// number and size of every bank must be the same.
func (mem *Memory) Compatible(snap *Memory) bool {
	if snap.pager != nil && mem.pager != snap.pager {
		return false
	}
	if len(mem.ROM) != len(snap.ROM) || len(mem.RAM) != len(snap.RAM) {
		return false
	}
	if (mem.DOCK == nil) != (snap.DOCK == nil) || (mem.EXROM == nil) != (snap.EXROM == nil) {
		return false
	}
	for i := range mem.RAM {
		if len(mem.RAM[i].Data) != len(snap.RAM[i].Data) {
			return false
		}
	}
	return true
}

// Plumb copies the contents and paging state of the snapshot into the memory.
// The snapshot may have been decoded from a file, in which case it will have
// no pager.
func (mem *Memory) Plumb(snap *Memory) error {
	if !mem.Compatible(snap) {
		return curated.Errorf(Incompatible, fmt.Sprintf("%s and %s", mem, snap))
	}
	cp := func(dst *Page, src *Page) {
		if dst != nil && src != nil {
			copy(dst.Data, src.Data)
		}
	}
	for i := range mem.ROM {
		cp(mem.ROM[i], snap.ROM[i])
	}
	for i := range mem.RAM {
		cp(mem.RAM[i], snap.RAM[i])
	}
	cp(mem.EXROM, snap.EXROM)
	cp(mem.DOCK, snap.DOCK)
	mem.Registers = snap.Registers
	mem.pager.Apply(mem)
	mem.Screen = snap.Screen
	return nil
}
