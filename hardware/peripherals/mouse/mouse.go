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

// Package mouse implements the Kempston mouse interface.
//
// The interface counts pointer movement in two free running 8-bit registers.
// Software reads the registers once a frame and uses the difference from
// the previous read.
package mouse

import (
	"fmt"

	"github.com/jetsetilly/zxchip/hardware/bus"
)

// Port of the interface. Address lines 5, 6 and 7 are decoded so that the
// interface does not collide with a Kempston joystick.
var Port = bus.PortAddress{Mask: 0x00e0, Bits: 0x00c0}

// Address line 8 low selects the buttons. Otherwise address line 10 selects
// between the horizontal (low) and vertical (high) registers.
const (
	selectPosition = 0x0100
	selectVertical = 0x0400
)

// Button of the mouse. The value is the bit in the buttons register, which
// is active low.
type Button uint8

// List of valid Button values.
const (
	Right  Button = 0x01
	Left   Button = 0x02
	Middle Button = 0x04
)

const buttonMask = uint8(Right | Left | Middle)

// Mouse is the Kempston mouse interface. Implements the bus.Device interface.
type Mouse struct {
	x       uint8
	y       uint8
	buttons uint8
}

// NewMouse is the preferred method of initialisation for the Mouse type.
func NewMouse() *Mouse {
	m := &Mouse{}
	m.Reset()
	return m
}

// Name implements the bus.Device interface.
func (m *Mouse) Name() string {
	return "mouse"
}

func (m *Mouse) String() string {
	return fmt.Sprintf("mouse: x=%d y=%d buttons=%03b", m.x, m.y, ^m.buttons&buttonMask)
}

// Move the mouse by the host pointer delta. Positive dy is down the screen
// on the host and up the screen for the interface. Deltas are halved and
// limited to the range of a signed byte before being added to the counters.
func (m *Mouse) Move(dx int, dy int) {
	m.x = clampedMove(m.x, dx)
	m.y = clampedMove(m.y, -dy)
}

func clampedMove(v uint8, delta int) uint8 {
	delta >>= 1
	delta = min(max(delta, -128), 127)
	return v + uint8(int8(delta))
}

// Set the state of a button.
func (m *Mouse) Set(b Button, pressed bool) {
	if pressed {
		m.buttons &^= uint8(b)
	} else {
		m.buttons |= uint8(b)
	}
}

// Position returns the value of the horizontal and vertical registers.
func (m *Mouse) Position() (uint8, uint8) {
	return m.x, m.y
}

// Clock implements the bus.Device interface.
func (m *Mouse) Clock() bus.Representation {
	return bus.FrameCycles
}

// Reset implements the bus.Device interface.
func (m *Mouse) Reset() {
	m.x = 0xff
	m.y = 0xff
	m.buttons = 0xff
}

// ReadIO implements the bus.Device interface.
func (m *Mouse) ReadIO(port uint16, _ int64) (uint8, bool, int) {
	if !Port.Match(port) {
		return 0, false, 0
	}
	switch {
	case port&selectPosition == 0:
		return m.buttons, true, 0
	case port&selectVertical == 0:
		return m.x, true, 0
	}
	return m.y, true, 0
}

// WriteIO implements the bus.Device interface.
func (m *Mouse) WriteIO(_ uint16, data uint8, _ int64) (uint8, int) {
	return data, 0
}

// AdvanceTo implements the bus.Device interface.
func (m *Mouse) AdvanceTo(_ int64) {}

// NextFrame implements the bus.Device interface.
func (m *Mouse) NextFrame(_ int64) {}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Mouse) MarshalBinary() ([]byte, error) {
	return []byte{m.x, m.y, m.buttons}, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Mouse) UnmarshalBinary(data []byte) error {
	if len(data) != 3 {
		return fmt.Errorf("mouse: state should be three bytes not %d", len(data))
	}
	m.x = data[0]
	m.y = data[1]
	m.buttons = data[2] | ^buttonMask
	return nil
}
