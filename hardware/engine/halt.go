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

package engine

import (
	"fmt"

	"github.com/jetsetilly/zxchip/hardware/ula"
)

// the address of the IM 1 interrupt routine.
const vector = 0x0038

// the address the engine jumps to after reset.
const resetPC = 0x0000

// the phase of the interrupt routine being executed.
type phase int

const (
	halted phase = iota
	ei
	ret
)

// Halt is an Engine that executes HALT repeatedly. When an interrupt is
// accepted the return address is pushed onto the stack and the routine at
// 0x0038 is run. The routine is always EI followed by RET whatever the
// contents of memory.
type Halt struct {
	PC  uint16
	SP  uint16
	I   uint8
	R   uint8
	IFF bool

	// the number of instructions executed and interrupts accepted since the
	// last reset
	Instructions int
	Interrupts   int

	// the address of the HALT instruction
	haltAt uint16
	phase  phase
}

// NewHalt is the preferred method of initialisation for the Halt type. The
// engine halts at the supplied address with the stack pointer at sp.
func NewHalt(at uint16, sp uint16) *Halt {
	h := &Halt{haltAt: at}
	h.Reset()
	h.SP = sp
	return h
}

func (h *Halt) String() string {
	return fmt.Sprintf("PC=%04x SP=%04x IR=%02x%02x IFF=%v", h.PC, h.SP, h.I, h.R, h.IFF)
}

// Reset implements the ula.Engine interface. Interrupts are enabled and the
// engine is halted.
func (h *Halt) Reset() {
	h.PC = h.haltAt
	h.I = 0x3f
	h.R = 0
	h.IFF = true
	h.Instructions = 0
	h.Interrupts = 0
	h.phase = halted
}

// IR returns the value of the IR register pair.
func (h *Halt) IR() uint16 {
	return uint16(h.I)<<8 | uint16(h.R)
}

// an opcode fetch. the refresh counter increments with every M1 cycle but bit
// 7 is preserved.
func (h *Halt) fetch(bus ula.CycleBus, addr uint16) uint8 {
	bus.SetRefresh(h.IR())
	v, _ := bus.MemoryCycle(addr, ula.Fetch, 0)
	h.R = (h.R & 0x80) | ((h.R + 1) & 0x7f)
	return v
}

// Step implements the ula.Engine interface.
func (h *Halt) Step(bus ula.CycleBus) error {
	h.Instructions++

	switch h.phase {
	case halted:
		// the HALT instruction fetches the following byte but discards it
		h.fetch(bus, h.PC+1)
	case ei:
		h.fetch(bus, h.PC)
		h.PC++
		h.IFF = true
		h.phase = ret
	case ret:
		h.fetch(bus, h.PC)
		lo, _ := bus.MemoryCycle(h.SP, ula.Read, 0)
		h.SP++
		hi, _ := bus.MemoryCycle(h.SP, ula.Read, 0)
		h.SP++
		h.PC = uint16(hi)<<8 | uint16(lo)
		if h.PC != h.haltAt {
			return fmt.Errorf("engine: return to %04x is not to the halt instruction", h.PC)
		}
		h.phase = halted
	}

	return nil
}

// Interrupt implements the ula.Engine interface. The interrupt is accepted if
// interrupts are enabled and the engine is not in the first instruction after
// EI.
func (h *Halt) Interrupt(bus ula.CycleBus) bool {
	if !h.IFF || h.phase == ret {
		return false
	}

	h.IFF = false
	h.Interrupts++

	// the acknowledge cycle is an M1 cycle extended by two wait states
	// followed by a single internal cycle
	bus.SetRefresh(h.IR())
	h.R = (h.R & 0x80) | ((h.R + 1) & 0x7f)
	for i := 0; i < 7; i++ {
		bus.MemoryCycle(h.IR(), ula.Internal, 0)
	}

	h.SP--
	bus.MemoryCycle(h.SP, ula.Write, uint8(h.PC>>8))
	h.SP--
	bus.MemoryCycle(h.SP, ula.Write, uint8(h.PC))

	h.PC = vector
	h.phase = ei

	return true
}
