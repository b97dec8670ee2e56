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

package keyboard_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/test"
)

func TestHostKeys(t *testing.T) {
	ks, ok := keyboard.HostKeys("a")
	test.ExpectEquality(t, ok, true)
	test.DemandEquality(t, len(ks), 1)
	test.ExpectEquality(t, ks[0], keyboard.A)

	ks, ok = keyboard.HostKeys("Backspace")
	test.ExpectEquality(t, ok, true)
	test.DemandEquality(t, len(ks), 2)
	test.ExpectEquality(t, ks[0], keyboard.CapsShift)
	test.ExpectEquality(t, ks[1], keyboard.N0)

	_, ok = keyboard.HostKeys("F12")
	test.ExpectEquality(t, ok, false)
}

func TestHost(t *testing.T) {
	var h keyboard.Host
	test.ExpectEquality(t, h.Matrix(), keyboard.Matrix{})

	test.ExpectEquality(t, h.Press("LEFT SHIFT"), true)
	test.ExpectEquality(t, h.Press("BACKSPACE"), true)
	test.ExpectEquality(t, h.Press("F1"), false)

	m := h.Matrix()
	test.ExpectEquality(t, m.Pressed(keyboard.CapsShift), true)
	test.ExpectEquality(t, m.Pressed(keyboard.N0), true)

	// caps shift is still held by the shift key
	h.Release("backspace")
	m = h.Matrix()
	test.ExpectEquality(t, m.Pressed(keyboard.CapsShift), true)
	test.ExpectEquality(t, m.Pressed(keyboard.N0), false)

	h.Release("left shift")
	test.ExpectEquality(t, h.Matrix(), keyboard.Matrix{})

	h.Press("space")
	h.ReleaseAll()
	test.ExpectEquality(t, h.Matrix(), keyboard.Matrix{})
}
