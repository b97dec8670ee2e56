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
	"strings"

	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/hardware/ula"
)

type opType int

const (
	memOp opType = iota
	ioOp
	refreshOp
)

// Op is a single operation in a Script. Ops are created with the Fetch(),
// Read(), Write(), Internal(), In(), Out() and Refresh() functions.
type Op struct {
	typ   opType
	addr  uint16
	cycle ula.CycleKind
	io    ula.IOKind
	data  uint8
	count int
}

func (op Op) String() string {
	switch op.typ {
	case ioOp:
		if op.io == ula.Out {
			return fmt.Sprintf("out %04x,%02x", op.addr, op.data)
		}
		return fmt.Sprintf("in %04x", op.addr)
	case refreshOp:
		return fmt.Sprintf("refresh %04x", op.addr)
	}
	switch op.cycle {
	case ula.Write:
		return fmt.Sprintf("write %04x,%02x", op.addr, op.data)
	case ula.Internal:
		return fmt.Sprintf("internal %04x x%d", op.addr, op.count)
	}
	return fmt.Sprintf("%s %04x", op.cycle, op.addr)
}

// Fetch is an opcode fetch from the address.
func Fetch(addr uint16) Op {
	return Op{typ: memOp, addr: addr, cycle: ula.Fetch, count: 1}
}

// Read is a memory read from the address.
func Read(addr uint16) Op {
	return Op{typ: memOp, addr: addr, cycle: ula.Read, count: 1}
}

// Write is a memory write to the address.
func Write(addr uint16, data uint8) Op {
	return Op{typ: memOp, addr: addr, cycle: ula.Write, data: data, count: 1}
}

// Internal is n single cycles with the address on the address bus.
func Internal(addr uint16, n int) Op {
	return Op{typ: memOp, addr: addr, cycle: ula.Internal, count: n}
}

// In is a read from the I/O port.
func In(port uint16) Op {
	return Op{typ: ioOp, addr: port, io: ula.In, count: 1}
}

// Out is a write to the I/O port.
func Out(port uint16, data uint8) Op {
	return Op{typ: ioOp, addr: port, io: ula.Out, data: data, count: 1}
}

// Refresh sets the value of the IR register pair seen by the next fetch. It
// takes no time.
func Refresh(ir uint16) Op {
	return Op{typ: refreshOp, addr: ir}
}

// Result is the outcome of an Op.
type Result struct {
	Op    Op
	Value uint8
	Wait  int

	// the time at the end of the operation
	End coords.Timestamp
}

// Instruction is a list of Ops executed by a single call to Step().
type Instruction []Op

// Script is an Engine that executes a list of Instructions. Once the script
// is exhausted (and Loop is false) the engine executes opcode fetches from
// address zero. Each idle fetch is a single instruction.
type Script struct {
	Instructions []Instruction

	// accept the interrupt whenever it is signalled. the acceptance takes no
	// cycles
	AcceptInterrupts bool

	// restart the script once it has been exhausted
	Loop bool

	// the results of every operation executed and the time of every
	// interrupt accepted. cleared on Reset()
	Results    []Result
	Interrupts []coords.Timestamp

	next int
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(instructions ...Instruction) *Script {
	return &Script{Instructions: instructions}
}

func (s *Script) String() string {
	b := strings.Builder{}
	for i, ins := range s.Instructions {
		if i == s.next {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		for j, op := range ins {
			if j > 0 {
				b.WriteString("; ")
			}
			b.WriteString(op.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Reset implements the ula.Engine interface.
func (s *Script) Reset() {
	s.next = 0
	s.Results = s.Results[:0]
	s.Interrupts = s.Interrupts[:0]
}

// Exhausted returns true if every instruction has been executed and the
// script is not looping.
func (s *Script) Exhausted() bool {
	return !s.Loop && s.next >= len(s.Instructions)
}

// Step implements the ula.Engine interface.
func (s *Script) Step(bus ula.CycleBus) error {
	if s.Loop && s.next >= len(s.Instructions) {
		s.next = 0
	}

	// idle fetches are not recorded
	if s.next >= len(s.Instructions) {
		bus.MemoryCycle(0x0000, ula.Fetch, 0)
		return nil
	}

	ins := s.Instructions[s.next]
	s.next++

	if len(ins) == 0 {
		return fmt.Errorf("engine: instruction %d is empty", s.next-1)
	}

	for _, op := range ins {
		s.exec(bus, op)
	}

	return nil
}

func (s *Script) exec(bus ula.CycleBus, op Op) {
	switch op.typ {
	case refreshOp:
		bus.SetRefresh(op.addr)
		return
	case ioOp:
		v, w := bus.IOCycle(op.addr, op.io, op.data)
		s.Results = append(s.Results, Result{Op: op, Value: v, Wait: w, End: bus.Now()})
		return
	}

	r := Result{Op: op}
	for i := 0; i < op.count; i++ {
		v, w := bus.MemoryCycle(op.addr, op.cycle, op.data)
		r.Value = v
		r.Wait += w
	}
	r.End = bus.Now()
	s.Results = append(s.Results, r)
}

// Interrupt implements the ula.Engine interface.
func (s *Script) Interrupt(bus ula.CycleBus) bool {
	if !s.AcceptInterrupts {
		return false
	}
	s.Interrupts = append(s.Interrupts, bus.Now())
	return true
}
