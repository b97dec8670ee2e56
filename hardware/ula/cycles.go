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

package ula

import (
	"fmt"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// CycleKind is the type of a memory cycle.
type CycleKind int

// List of valid CycleKind values.
const (
	// opcode fetch (M1). four cycles
	Fetch CycleKind = iota

	// memory read or write. three cycles
	Read
	Write

	// a single cycle during which the address bus holds the address but there
	// is no memory request. contended like any other cycle
	Internal
)

func (k CycleKind) String() string {
	switch k {
	case Fetch:
		return "fetch"
	case Read:
		return "read"
	case Write:
		return "write"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// Length returns the number of cycles taken by the cycle kind, not including
// any wait states.
func (k CycleKind) Length() int {
	switch k {
	case Fetch:
		return 4
	case Read, Write:
		return 3
	case Internal:
		return 1
	}
	return 0
}

// IOKind is the type of an I/O cycle.
type IOKind int

// List of valid IOKind values.
const (
	In IOKind = iota
	Out
)

func (k IOKind) String() string {
	if k == Out {
		return "out"
	}
	return "in"
}

// the number of cycles in an I/O access not including wait states.
const ioLength = 4

// CycleBus is the interface through which an Engine requests cycles.
type CycleBus interface {
	// MemoryCycle performs the memory cycle. For Write cycles the data
	// argument is the value to write. The value returned is the value read
	// (or written). The wait value is the number of wait states the cycle
	// was delayed by
	MemoryCycle(addr uint16, kind CycleKind, data uint8) (value uint8, wait int)

	// IOCycle performs a complete I/O access
	IOCycle(port uint16, kind IOKind, data uint8) (value uint8, wait int)

	// the time at the start of the next cycle
	Now() coords.Timestamp

	// SetRefresh informs the chipset of the value of the IR register pair
	// for the next opcode fetch
	SetRefresh(ir uint16)
}

// Engine is the interface for the stepping engine. An Engine is normally a
// CPU but can be anything that produces a sequence of cycles.
type Engine interface {
	// Step executes one instruction
	Step(bus CycleBus) error

	// Interrupt signals the maskable interrupt. The Engine should return
	// true if the interrupt was accepted
	Interrupt(bus CycleBus) bool

	Reset()
}

// SetRefresh implements the CycleBus interface.
func (ula *ULA) SetRefresh(ir uint16) {
	ula.refresh = ir
}

// the contention delay for a memory cycle at the address starting at the
// current time.
func (ula *ULA) memContention(addr uint16) int {
	if ula.t >= ula.eof || !ula.mem.IsContended(addr) {
		return 0
	}
	return ula.window.Mem(ula.t)
}

// MemoryCycle implements the CycleBus interface.
func (ula *ULA) MemoryCycle(addr uint16, kind CycleKind, data uint8) (uint8, int) {
	l := kind.Length()
	if l == 0 {
		ula.fault(curated.Errorf(coords.TimingViolation, fmt.Sprintf("memory cycle of unknown kind (%d)", kind)))
		return 0xff, 0
	}

	wait := ula.memContention(addr)
	ula.t += wait + l

	switch kind {
	case Fetch:
		if ula.decoding.Snow {
			ula.snow()
		}
		return ula.mem.Read(addr), wait
	case Read:
		return ula.mem.Read(addr), wait
	case Write:
		ula.write(addr, data)
		return data, wait
	}

	return 0xff, wait
}

// write to memory, keeping the video cache up to date.
func (ula *ULA) write(addr uint16, data uint8) {
	sl := ula.mem.Slots[addr>>13]
	if sl.Kind == memory.RAM && sl.Bank == ula.mem.Screen {
		offset := sl.Offset + int(addr&(memory.SlotSize-1))
		ula.cache.Write(ula.mem.ScreenData(), ula.layout, offset, ula.beam())
	}
	ula.mem.Write(addr, data)
}

// the refresh address disturbs the display fetch if it points into contended
// memory.
func (ula *ULA) snow() {
	if !ula.mem.IsContended(ula.refresh & 0xff00) {
		return
	}
	b := video.BeamFrom(ula.spec, ula.t, ula.spec.SnowHC)
	ula.cache.Snow(ula.mem.ScreenData(), ula.layout, b, uint8(ula.refresh))
}

// IOCycle implements the CycleBus interface. The device is read or written on
// the cycle at which IORQ goes low, after any delay caused by a contended
// high byte but before the delays of the remaining phases.
func (ula *ULA) IOCycle(port uint16, kind IOKind, data uint8) (uint8, int) {
	var first, rest int
	if ula.t < ula.eof {
		first, rest = ula.window.IOPhases(ula.t, port, ula.mem.IsContended(port))
	}

	start := ula.t
	ula.t = start + first + 1

	var w int
	switch kind {
	case In:
		data, w = ula.readPort(port)
	case Out:
		w = ula.writePort(port, data)
	default:
		ula.fault(curated.Errorf(coords.TimingViolation, fmt.Sprintf("i/o cycle of unknown kind (%d)", kind)))
	}

	ula.t = start + first + rest + ioLength + w
	return data, first + rest + w
}
