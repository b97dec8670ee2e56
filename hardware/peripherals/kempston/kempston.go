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

// Package kempston implements the Kempston joystick interface.
package kempston

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/bus"
)

// Port of the joystick. Only address lines 5, 6 and 7 are decoded.
var Port = bus.PortAddress{Mask: 0x00e0, Bits: 0x0000}

// Direction or button of the joystick. The value is the bit in the port.
type Direction uint8

// List of valid Direction values.
const (
	Right Direction = 0x01
	Left  Direction = 0x02
	Down  Direction = 0x04
	Up    Direction = 0x08
	Fire  Direction = 0x10
)

var names = map[Direction]string{
	Right: "right",
	Left:  "left",
	Down:  "down",
	Up:    "up",
	Fire:  "fire",
}

func (d Direction) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	return "unknown"
}

// UnknownDirection is the curated error pattern returned by ParseDirection().
const UnknownDirection = "kempston: unknown direction (%s)"

// ParseDirection returns the Direction with the name. Not case sensitive.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, n := range names {
		if n == s {
			return d, nil
		}
	}
	return 0, curated.Errorf(UnknownDirection, s)
}

// Kempston is the joystick interface. Implements the bus.Device interface.
type Kempston struct {
	state uint8
}

// NewKempston is the preferred method of initialisation for the Kempston
// type.
func NewKempston() *Kempston {
	return &Kempston{}
}

// Name implements the bus.Device interface.
func (k *Kempston) Name() string {
	return "kempston"
}

func (k *Kempston) String() string {
	var s []string
	for _, d := range []Direction{Up, Down, Left, Right, Fire} {
		if k.state&uint8(d) != 0 {
			s = append(s, d.String())
		}
	}
	if len(s) == 0 {
		return "kempston: centred"
	}
	return fmt.Sprintf("kempston: %s", strings.Join(s, "+"))
}

// Set the state of the direction or button.
func (k *Kempston) Set(d Direction, pressed bool) {
	if pressed {
		k.state |= uint8(d)
	} else {
		k.state &^= uint8(d)
	}
}

// State returns the value read from the port.
func (k *Kempston) State() uint8 {
	return k.state
}

// Clock implements the bus.Device interface.
func (k *Kempston) Clock() bus.Representation {
	return bus.FrameCycles
}

// Reset implements the bus.Device interface.
func (k *Kempston) Reset() {
	k.state = 0
}

// ReadIO implements the bus.Device interface.
func (k *Kempston) ReadIO(port uint16, _ int64) (uint8, bool, int) {
	if !Port.Match(port) {
		return 0, false, 0
	}
	return k.state, true, 0
}

// WriteIO implements the bus.Device interface.
func (k *Kempston) WriteIO(_ uint16, data uint8, _ int64) (uint8, int) {
	return data, 0
}

// AdvanceTo implements the bus.Device interface.
func (k *Kempston) AdvanceTo(_ int64) {}

// NextFrame implements the bus.Device interface.
func (k *Kempston) NextFrame(_ int64) {}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (k *Kempston) MarshalBinary() ([]byte, error) {
	return []byte{k.state}, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (k *Kempston) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return fmt.Errorf("kempston: state should be one byte not %d", len(data))
	}
	k.state = data[0] & 0x1f
	return nil
}
