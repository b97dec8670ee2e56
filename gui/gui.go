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

// Package gui defines the interface between the emulation loop and the
// front-ends that present it to the user.
//
// Front-ends that must be serviced on the main thread (the SDL window) also
// implement the Service() and Destroy() functions required by the main
// package.
package gui

import (
	"image"

	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/peripherals/mouse"
)

// Display is implemented by every front-end.
type Display interface {
	// SetFrame is called by the emulation goroutine once a frame has been
	// rendered. The image is only valid until the function returns.
	SetFrame(img *image.RGBA)

	// the state of the keyboard to be used for the next frame
	Keyboard() keyboard.Matrix

	// the state of the joystick to be used for the next frame. the value
	// is ignored if there is no joystick interface attached to the machine
	Joystick() kempston.Direction

	// the channel is closed when the user has asked to quit
	Quit() <-chan bool
}

// Rewinder is implemented by displays that allow the user to rewind the
// emulation.
type Rewinder interface {
	// the number of times the user has asked to rewind since the previous
	// call
	RewindRequests() int
}

// Pointer is implemented by displays that forward host mouse input.
type Pointer interface {
	// the pointer movement since the previous call and the buttons that
	// are currently held
	Pointer() (dx int, dy int, held []mouse.Button)
}

// Host key names for the joystick. Host keys used for the joystick do not
// also press keys on the keyboard matrix.
var JoystickKeys = map[string]kempston.Direction{
	"UP":        kempston.Up,
	"DOWN":      kempston.Down,
	"LEFT":      kempston.Left,
	"RIGHT":     kempston.Right,
	"LEFT ALT":  kempston.Fire,
	"RIGHT ALT": kempston.Fire,
}
