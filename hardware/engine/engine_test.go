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

package engine_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func newULA(t *testing.T) *ula.ULA {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	u, err := ula.NewULA(env, &specification.Spec48K)
	test.DemandSuccess(t, err)
	return u
}

func TestHalt(t *testing.T) {
	u := newULA(t)
	h := engine.NewHalt(0x8000, 0xff00)
	test.ExpectEquality(t, h.IFF, true)

	// the interrupt is accepted at the start of the frame
	test.ExpectEquality(t, h.Interrupt(u), true)
	test.ExpectEquality(t, h.PC, uint16(0x0038))
	test.ExpectEquality(t, h.SP, uint16(0xfefe))
	test.ExpectEquality(t, h.IFF, false)
	test.ExpectEquality(t, u.Cycle(), 13)
	test.ExpectEquality(t, u.Memory().Read(0xfeff), uint8(0x80))
	test.ExpectEquality(t, u.Memory().Read(0xfefe), uint8(0x00))

	// interrupts are disabled
	test.ExpectEquality(t, h.Interrupt(u), false)

	// EI
	test.DemandSuccess(t, h.Step(u))
	test.ExpectEquality(t, h.IFF, true)
	test.ExpectEquality(t, u.Cycle(), 17)

	// no interrupt in the instruction after EI
	test.ExpectEquality(t, h.Interrupt(u), false)

	// RET
	test.DemandSuccess(t, h.Step(u))
	test.ExpectEquality(t, h.PC, uint16(0x8000))
	test.ExpectEquality(t, h.SP, uint16(0xff00))
	test.ExpectEquality(t, u.Cycle(), 27)

	// HALT
	test.DemandSuccess(t, h.Step(u))
	test.ExpectEquality(t, u.Cycle(), 31)
	test.ExpectEquality(t, h.PC, uint16(0x8000))
	test.ExpectEquality(t, h.R, uint8(4))

	// a corrupted stack is an error
	test.ExpectEquality(t, h.Interrupt(u), true)
	u.Memory().Write(0xfeff, 0x90)
	test.DemandSuccess(t, h.Step(u))
	test.ExpectFailure(t, h.Step(u))
}

func TestRefresh(t *testing.T) {
	u := newULA(t)
	h := engine.NewHalt(0x8000, 0xff00)
	h.R = 0xff
	test.DemandSuccess(t, h.Step(u))
	test.ExpectEquality(t, h.R, uint8(0x80))
}

func TestScript(t *testing.T) {
	u := newULA(t)
	s := engine.NewScript(
		engine.Instruction{engine.Fetch(0x8000), engine.Read(0x8001)},
		engine.Instruction{engine.Refresh(0x3f00), engine.Write(0x8002, 0x99)},
		engine.Instruction{engine.Internal(0x8000, 5)},
		engine.Instruction{engine.Out(0x00ff, 0x12), engine.In(0x00ff)},
	)

	for !s.Exhausted() {
		test.DemandSuccess(t, s.Step(u))
	}
	test.ExpectEquality(t, u.Cycle(), 4+3+3+5+4+4)
	test.DemandEquality(t, len(s.Results), 6)
	test.ExpectEquality(t, s.Results[2].Value, uint8(0x99))
	test.ExpectEquality(t, u.Memory().Read(0x8002), uint8(0x99))
	test.ExpectEquality(t, s.Results[3].End.Cycle, 15)

	// idle fetches are not recorded
	test.DemandSuccess(t, s.Step(u))
	test.ExpectEquality(t, u.Cycle(), 27)
	test.ExpectEquality(t, len(s.Results), 6)

	s.Reset()
	s.Loop = true
	for i := 0; i < 5; i++ {
		test.DemandSuccess(t, s.Step(u))
	}
	test.ExpectEquality(t, len(s.Results), 8)
	test.ExpectEquality(t, s.Exhausted(), false)
}
