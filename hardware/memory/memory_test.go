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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/test"
)

func TestMemory48K(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec48K)
	test.ExpectEquality(t, mem.String(), "ROM0 ROM0 RAM0 RAM0 RAM1 RAM1 RAM2 RAM2")

	// ROM writes are ignored
	_, _, ok := mem.Write(0x0000, 0x12)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, mem.Read(0x0000), uint8(0x00))

	// poke can change ROM
	test.ExpectSuccess(t, mem.Poke(0x0000, 0x12))
	test.ExpectEquality(t, mem.Peek(0x0000), uint8(0x12))

	bank, offset, ok := mem.Write(0x4001, 0xaa)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, bank, 0)
	test.ExpectEquality(t, offset, 1)
	test.ExpectEquality(t, mem.ScreenData()[1], uint8(0xaa))

	bank, offset, ok = mem.Write(0xfffe, 0xbb)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, bank, 2)
	test.ExpectEquality(t, offset, 0x3ffe)
	test.ExpectEquality(t, mem.Read(0xfffe), uint8(0xbb))

	test.ExpectFailure(t, mem.IsContended(0x3fff))
	test.ExpectSuccess(t, mem.IsContended(0x4000))
	test.ExpectSuccess(t, mem.IsContended(0x7fff))
	test.ExpectFailure(t, mem.IsContended(0x8000))
}

func TestMemory16K(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec16K)
	_, _, ok := mem.Write(0x8000, 0x12)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, mem.Read(0x8000), uint8(0xff))
	test.ExpectEquality(t, mem.Read(0xffff), uint8(0xff))
	test.ExpectFailure(t, mem.IsContended(0xc000))
}

func TestPager128(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec128K)
	pager, ok := mem.Pager().(memory.Pager128)
	test.DemandSuccess(t, ok)

	test.ExpectEquality(t, mem.String(), "ROM0 ROM0 RAM5 RAM5 RAM2 RAM2 RAM0 RAM0")
	test.ExpectEquality(t, mem.Screen, 5)

	mem.Write(0xc000, 0x01)
	test.ExpectSuccess(t, pager.Write(mem, 0x03))
	test.ExpectEquality(t, mem.Read(0xc000), uint8(0x00))
	test.ExpectSuccess(t, mem.IsContended(0xc000))
	mem.Write(0xc000, 0x03)

	// paging does not change contents
	test.ExpectSuccess(t, pager.Write(mem, 0x00))
	test.ExpectEquality(t, mem.Read(0xc000), uint8(0x01))
	test.ExpectFailure(t, mem.IsContended(0xc000))

	// bank 5 is visible at both 0x4000 and 0xc000
	test.ExpectSuccess(t, pager.Write(mem, 0x05))
	mem.Write(0xc123, 0x55)
	test.ExpectEquality(t, mem.Read(0x4123), uint8(0x55))

	// shadow screen and rom
	test.ExpectSuccess(t, pager.Write(mem, memory.Page128Shadow|memory.Page128ROM))
	test.ExpectEquality(t, mem.Screen, 7)
	test.ExpectEquality(t, mem.Slots[0].Bank, 1)

	// undecoded bits are ignored
	test.ExpectSuccess(t, pager.Write(mem, 0xc7))
	test.ExpectEquality(t, mem.Registers.Port7FFD, uint8(0x07))

	// lock
	test.ExpectSuccess(t, pager.Write(mem, memory.Page128Lock|0x01))
	test.ExpectFailure(t, pager.Write(mem, 0x02))
	test.ExpectEquality(t, mem.Slots[6].Bank, 1)

	// reset unlocks
	mem.Reset()
	test.ExpectSuccess(t, pager.Write(mem, 0x02))
	test.ExpectEquality(t, mem.Slots[6].Bank, 2)
}

func TestPagerPlus3(t *testing.T) {
	mem := memory.NewMemory(&specification.SpecPlus3)
	pager, ok := mem.Pager().(memory.PagerPlus3)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, mem.String(), "ROM0 ROM0 RAM5 RAM5 RAM2 RAM2 RAM0 RAM0")

	// the upper four banks are contended
	test.ExpectFailure(t, mem.IsContended(0xc000))
	test.ExpectSuccess(t, mem.IsContended(0x4000))

	// ROM is selected by a bit from each register
	test.ExpectSuccess(t, pager.Write(mem, memory.Page128ROM|0x04))
	test.ExpectEquality(t, mem.String(), "ROM1 ROM1 RAM5 RAM5 RAM2 RAM2 RAM4 RAM4")
	test.ExpectSuccess(t, mem.IsContended(0xc000))
	test.ExpectSuccess(t, pager.WriteExt(mem, memory.PagePlus3ROMHi))
	test.ExpectEquality(t, mem.String(), "ROM3 ROM3 RAM5 RAM5 RAM2 RAM2 RAM4 RAM4")
	test.ExpectSuccess(t, pager.Write(mem, 0x04))
	test.ExpectEquality(t, mem.String(), "ROM2 ROM2 RAM5 RAM5 RAM2 RAM2 RAM4 RAM4")

	// special paging modes
	test.ExpectSuccess(t, pager.WriteExt(mem, memory.PagePlus3Special))
	test.ExpectEquality(t, mem.String(), "RAM0 RAM0 RAM1 RAM1 RAM2 RAM2 RAM3 RAM3")
	test.ExpectFailure(t, mem.IsContended(0x0000))
	test.ExpectSuccess(t, pager.WriteExt(mem, memory.PagePlus3Special|0x02))
	test.ExpectEquality(t, mem.String(), "RAM4 RAM4 RAM5 RAM5 RAM6 RAM6 RAM7 RAM7")
	test.ExpectSuccess(t, mem.IsContended(0x0000))
	test.ExpectSuccess(t, pager.WriteExt(mem, memory.PagePlus3Special|0x04))
	test.ExpectEquality(t, mem.String(), "RAM4 RAM4 RAM5 RAM5 RAM6 RAM6 RAM3 RAM3")
	test.ExpectSuccess(t, pager.WriteExt(mem, memory.PagePlus3Special|0x06))
	test.ExpectEquality(t, mem.String(), "RAM4 RAM4 RAM7 RAM7 RAM6 RAM6 RAM3 RAM3")

	// RAM in the bottom 16K is writable
	_, _, ok = mem.Write(0x0000, 0x12)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, mem.RAM[4].Data[0], uint8(0x12))

	// the lock bit locks both registers
	test.ExpectSuccess(t, pager.Write(mem, memory.Page128Lock|memory.Page128Shadow))
	test.ExpectEquality(t, mem.Screen, 7)
	test.ExpectFailure(t, pager.WriteExt(mem, 0x00))
	test.ExpectFailure(t, pager.Write(mem, 0x00))
	test.ExpectEquality(t, mem.String(), "RAM4 RAM4 RAM7 RAM7 RAM6 RAM6 RAM3 RAM3")

	mem.Reset()
	test.ExpectEquality(t, mem.String(), "ROM0 ROM0 RAM5 RAM5 RAM2 RAM2 RAM0 RAM0")
}

func TestPagerSCLD(t *testing.T) {
	mem := memory.NewMemory(&specification.SpecTC2048)
	pager, ok := mem.Pager().(memory.PagerSCLD)
	test.DemandSuccess(t, ok)

	dock := make([]uint8, 0x10000)
	dock[0x0000] = 0xd0
	dock[0xe000] = 0xd7
	test.DemandSuccess(t, mem.LoadDock(memory.DOCK, dock))
	test.DemandSuccess(t, mem.LoadDock(memory.EXROM, []uint8{0xe0}))

	pager.WriteMMU(mem, 0x81)
	test.ExpectEquality(t, mem.Read(0x0000), uint8(0xd0))
	test.ExpectEquality(t, mem.Read(0xe000), uint8(0xd7))
	test.ExpectEquality(t, mem.Read(0x4000), uint8(0x00))

	pager.SelectEXROM(mem, true)
	test.ExpectEquality(t, mem.Read(0x0000), uint8(0xe0))
	test.ExpectEquality(t, mem.Read(0xe000), uint8(0xe0))

	// DOCK and EXROM are not writable
	_, _, ok = mem.Write(0xe000, 0x00)
	test.ExpectFailure(t, ok)
}

func TestLoadROM(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec48K)
	test.ExpectSuccess(t, mem.LoadROM(0, []uint8{0xf3, 0xaf}))
	test.ExpectEquality(t, mem.Read(0x0001), uint8(0xaf))
	test.ExpectEquality(t, mem.Read(0x0002), uint8(0xff))

	err := mem.LoadROM(1, []uint8{0x00})
	test.ExpectSuccess(t, curated.Is(err, memory.NoBank))

	err = mem.LoadROM(0, make([]uint8, 0x4001))
	test.ExpectSuccess(t, curated.Is(err, memory.ROMError))
}

func TestSnapshot(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec48K)
	mem.Write(0x8000, 0x42)
	snap := mem.Snapshot()
	mem.Write(0x8000, 0x43)
	test.ExpectEquality(t, snap.Read(0x8000), uint8(0x42))
	test.ExpectSuccess(t, mem.Compatible(snap))
	test.ExpectFailure(t, mem.Compatible(memory.NewMemory(&specification.Spec128K).Snapshot()))
}

func TestPlumb(t *testing.T) {
	mem := memory.NewMemory(&specification.Spec128K)
	pager := mem.Pager().(memory.Pager128)
	test.ExpectSuccess(t, pager.Write(mem, 0x0b))
	mem.Write(0xc000, 0x42)
	snap := mem.Snapshot()

	test.ExpectSuccess(t, pager.Write(mem, 0x00))
	mem.Write(0xc000, 0x43)
	test.ExpectEquality(t, mem.Screen, 5)

	test.ExpectSuccess(t, mem.Plumb(snap))
	test.ExpectEquality(t, mem.Read(0xc000), uint8(0x42))
	test.ExpectEquality(t, mem.Screen, 7)
	test.ExpectEquality(t, mem.Registers.Port7FFD, uint8(0x0b))

	err := mem.Plumb(memory.NewMemory(&specification.Spec48K))
	test.ExpectFailure(t, err)
}
