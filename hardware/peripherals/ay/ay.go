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

// Package ay implements the register file of the AY-3-8912 sound chip as
// found in the 128K machines. The registers can be selected, written and read
// back but no sound is produced. Every write is recorded with the time of the
// write so that the register changes can be replayed by a synthesiser.
package ay

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/jetsetilly/zxchip/hardware/bus"
)

// Ports of the AY. Only address lines 1, 14 and 15 are decoded.
var (
	SelectPort = bus.PortAddress{Mask: 0xc002, Bits: 0xc000}
	DataPort   = bus.PortAddress{Mask: 0xc002, Bits: 0x8000}
)

// NumRegisters is the number of registers in the register file.
const NumRegisters = 16

// unused bits of each register read back as zero.
var masks = [NumRegisters]uint8{
	// tone periods
	0xff, 0x0f, 0xff, 0x0f, 0xff, 0x0f,
	// noise period and mixer
	0x1f, 0xff,
	// amplitudes
	0x1f, 0x1f, 0x1f,
	// envelope period and shape
	0xff, 0xff, 0x0f,
	// i/o ports
	0xff, 0xff,
}

// Change is a write to a register.
type Change struct {
	Time     int64
	Register uint8
	Value    uint8
}

func (c Change) String() string {
	return fmt.Sprintf("%d: R%d=%02x", c.Time, c.Register, c.Value)
}

// AY is the register file. Implements the bus.Device interface.
type AY struct {
	selected  uint8
	registers [NumRegisters]uint8

	// changes during the current frame. the times are frame cycles
	changes []Change
}

// NewAY is the preferred method of initialisation for the AY type.
func NewAY() *AY {
	return &AY{}
}

// Name implements the bus.Device interface.
func (ay *AY) Name() string {
	return "ay"
}

func (ay *AY) String() string {
	return fmt.Sprintf("ay: R%d selected % 02x", ay.selected, ay.registers[:])
}

// Register returns the value of the register.
func (ay *AY) Register(r int) uint8 {
	return ay.registers[r&(NumRegisters-1)]
}

// Selected returns the selected register.
func (ay *AY) Selected() uint8 {
	return ay.selected
}

// Changes returns the register writes made during the current frame.
func (ay *AY) Changes() []Change {
	return ay.changes
}

// Clock implements the bus.Device interface.
func (ay *AY) Clock() bus.Representation {
	return bus.FrameCycles
}

// Reset implements the bus.Device interface.
func (ay *AY) Reset() {
	ay.selected = 0
	ay.registers = [NumRegisters]uint8{}
	ay.changes = ay.changes[:0]
}

// ReadIO implements the bus.Device interface. A read of the select port
// returns the value of the selected register.
func (ay *AY) ReadIO(port uint16, _ int64) (uint8, bool, int) {
	if !SelectPort.Match(port) {
		return 0, false, 0
	}
	if ay.selected >= NumRegisters {
		return 0xff, true, 0
	}
	return ay.registers[ay.selected], true, 0
}

// WriteIO implements the bus.Device interface.
func (ay *AY) WriteIO(port uint16, data uint8, local int64) (uint8, int) {
	switch {
	case SelectPort.Match(port):
		ay.selected = data
	case DataPort.Match(port):
		if ay.selected < NumRegisters {
			v := data & masks[ay.selected]
			ay.registers[ay.selected] = v
			ay.changes = append(ay.changes, Change{Time: local, Register: ay.selected, Value: v})
		}
	}
	return data, 0
}

// AdvanceTo implements the bus.Device interface.
func (ay *AY) AdvanceTo(_ int64) {}

// NextFrame implements the bus.Device interface.
func (ay *AY) NextFrame(_ int64) {
	ay.changes = ay.changes[:0]
}

type state struct {
	Selected  uint8
	Registers [NumRegisters]uint8
	Changes   []Change
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (ay *AY) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(state{ay.selected, ay.registers, ay.changes}); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (ay *AY) UnmarshalBinary(data []byte) error {
	var s state
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	ay.selected = s.Selected
	ay.registers = s.Registers
	ay.changes = append(ay.changes[:0], s.Changes...)
	return nil
}
