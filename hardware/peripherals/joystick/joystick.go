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

// Package joystick implements the joystick interfaces that are not Kempston
// compatible. The Fuller box has a port of its own. The Sinclair and Cursor
// interfaces share ports with the keyboard and present the joystick as a
// set of keys.
//
// Every interface in the package is active low. Bits not driven by the
// joystick read high.
package joystick

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
)

// Kind of joystick interface.
type Kind int

// List of valid Kind values.
const (
	Fuller Kind = iota
	Sinclair1
	Sinclair2
	Cursor
)

var kindNames = []string{"fuller", "sinclair1", "sinclair2", "cursor"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// UnknownKind is the curated error pattern returned by ParseKind().
const UnknownKind = "joystick: unknown interface (%s)"

// ParseKind returns the Kind with the name. Not case sensitive. "sinclair"
// on its own is the same as "sinclair1".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "sinclair" {
		return Sinclair1, nil
	}
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, curated.Errorf(UnknownKind, s)
}

// FullerPort is the port of the Fuller box. The low byte is fully decoded.
var FullerPort = bus.PortAddress{Mask: 0x00ff, Bits: 0x007f}

// The Sinclair interfaces respond to the keyboard half-rows 6-0 (address line
// 12) and 1-5 (address line 11).
var (
	row60 = bus.PortAddress{Mask: 0x1001, Bits: 0x0000}
	row15 = bus.PortAddress{Mask: 0x0801, Bits: 0x0000}
)

// bit in the port for each direction. zero if the direction is not
// represented in that port.
type layout struct {
	up, down, left, right, fire uint8
}

var (
	fullerLayout    = layout{up: 0x01, down: 0x02, left: 0x04, right: 0x08, fire: 0x80}
	sinclair1Layout = layout{fire: 0x01, up: 0x02, down: 0x04, right: 0x08, left: 0x10}
	sinclair2Layout = layout{left: 0x01, right: 0x02, down: 0x04, up: 0x08, fire: 0x10}

	// key 5 is on the 1-5 row. the other cursor keys and 0 are on the 6-0 row
	cursor15Layout = layout{left: 0x10}
	cursor60Layout = layout{fire: 0x01, right: 0x04, up: 0x08, down: 0x10}
)

// value of the port for the directions in state
func (l layout) read(state uint8) uint8 {
	v := uint8(0xff)
	for _, b := range []struct {
		d   kempston.Direction
		bit uint8
	}{
		{kempston.Up, l.up},
		{kempston.Down, l.down},
		{kempston.Left, l.left},
		{kempston.Right, l.right},
		{kempston.Fire, l.fire},
	} {
		if state&uint8(b.d) != 0 {
			v &^= b.bit
		}
	}
	return v
}

// Joystick is a single joystick connected through one of the interfaces
// named by Kind. Implements the bus.Device interface.
//
// The directions are the same as those of the Kempston interface.
type Joystick struct {
	kind  Kind
	state uint8
}

// NewJoystick is the preferred method of initialisation for the Joystick
// type.
func NewJoystick(kind Kind) *Joystick {
	return &Joystick{kind: kind}
}

// Name implements the bus.Device interface.
func (j *Joystick) Name() string {
	return "joystick"
}

func (j *Joystick) String() string {
	var s []string
	for _, d := range []kempston.Direction{kempston.Up, kempston.Down, kempston.Left, kempston.Right, kempston.Fire} {
		if j.state&uint8(d) != 0 {
			s = append(s, d.String())
		}
	}
	if len(s) == 0 {
		return fmt.Sprintf("%s: centred", j.kind)
	}
	return fmt.Sprintf("%s: %s", j.kind, strings.Join(s, "+"))
}

// Kind returns the interface the joystick is connected through.
func (j *Joystick) Kind() Kind {
	return j.kind
}

// Set the state of the direction or button.
func (j *Joystick) Set(d kempston.Direction, pressed bool) {
	if pressed {
		j.state |= uint8(d)
	} else {
		j.state &^= uint8(d)
	}
}

// Clock implements the bus.Device interface.
func (j *Joystick) Clock() bus.Representation {
	return bus.FrameCycles
}

// Reset implements the bus.Device interface.
func (j *Joystick) Reset() {
	j.state = 0
}

// ReadIO implements the bus.Device interface.
func (j *Joystick) ReadIO(port uint16, _ int64) (uint8, bool, int) {
	switch j.kind {
	case Fuller:
		if FullerPort.Match(port) {
			return fullerLayout.read(j.state), true, 0
		}
	case Sinclair1:
		if row60.Match(port) {
			return sinclair1Layout.read(j.state), true, 0
		}
	case Sinclair2:
		if row15.Match(port) {
			return sinclair2Layout.read(j.state), true, 0
		}
	case Cursor:
		v := uint8(0xff)
		claimed := false
		if row15.Match(port) {
			v &= cursor15Layout.read(j.state)
			claimed = true
		}
		if row60.Match(port) {
			v &= cursor60Layout.read(j.state)
			claimed = true
		}
		return v, claimed, 0
	}
	return 0, false, 0
}

// WriteIO implements the bus.Device interface.
func (j *Joystick) WriteIO(_ uint16, data uint8, _ int64) (uint8, int) {
	return data, 0
}

// AdvanceTo implements the bus.Device interface.
func (j *Joystick) AdvanceTo(_ int64) {}

// NextFrame implements the bus.Device interface.
func (j *Joystick) NextFrame(_ int64) {}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The kind
// of interface is part of the state so that a snapshot can not be restored
// into a machine with a different interface.
func (j *Joystick) MarshalBinary() ([]byte, error) {
	return []byte{uint8(j.kind), j.state}, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (j *Joystick) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return fmt.Errorf("joystick: state should be two bytes not %d", len(data))
	}
	if Kind(data[0]) != j.kind {
		return fmt.Errorf("joystick: state is for %s not %s", Kind(data[0]), j.kind)
	}
	j.state = data[1] & 0x1f
	return nil
}
