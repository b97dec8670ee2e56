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

package scld_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/hardware/variants/scld"
	"github.com/jetsetilly/zxchip/hardware/video"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func newULA(t *testing.T, spec *specification.Spec) *ula.ULA {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	u, err := ula.NewULA(env, spec)
	test.DemandSuccess(t, err)
	return u
}

func TestWrongModel(t *testing.T) {
	_, err := scld.Install(newULA(t, &specification.Spec48K))
	test.ExpectSuccess(t, curated.Is(err, scld.WrongModel))
}

func TestScreenModes(t *testing.T) {
	u := newULA(t, &specification.SpecTC2048)
	sc, err := scld.Install(u)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, u.Decoding(), scld.Decoding)

	sc.WriteCtrl(uint8(scld.ModeAlternate))
	test.ExpectEquality(t, u.Layout(), video.Alternate)
	sc.WriteCtrl(uint8(scld.ModeHiColour))
	test.ExpectEquality(t, u.Layout(), video.HiColour)

	// hi-res is stored but rendered as the standard screen
	sc.WriteCtrl(uint8(scld.ModeHiRes) | 0x28)
	test.ExpectEquality(t, sc.Mode(), scld.ModeHiRes)
	test.ExpectEquality(t, sc.Mode().String(), "hi-res")
	test.ExpectEquality(t, sc.HiResColour(), uint8(5))
	test.ExpectEquality(t, u.Layout(), video.Standard)

	u.Reset(true)
	test.ExpectEquality(t, sc.Ctrl(), uint8(0))
	test.ExpectEquality(t, u.Layout(), video.Standard)
}

func TestPorts(t *testing.T) {
	u := newULA(t, &specification.SpecTC2048)
	_, err := scld.Install(u)
	test.DemandSuccess(t, err)

	s := engine.NewScript(
		engine.Instruction{engine.Out(0x12ff, 0x02)},
		engine.Instruction{engine.In(0x34ff)},
		engine.Instruction{engine.Out(0x00f4, 0x01)},
		engine.Instruction{engine.In(0x00f4)},
		engine.Instruction{engine.Read(0x0000)},
		engine.Instruction{engine.In(0x00fd)},
		engine.Instruction{engine.In(0xfefe)},
	)
	test.DemandSuccess(t, u.RunFrame(s))
	test.DemandEquality(t, len(s.Results), 7)

	test.ExpectEquality(t, s.Results[1].Value, uint8(0x02))
	test.ExpectEquality(t, s.Results[3].Value, uint8(0x01))
	test.ExpectEquality(t, u.Memory().Slots[0].Kind, memory.DOCK)

	// the DOCK is empty
	test.ExpectEquality(t, s.Results[4].Value, uint8(0xff))

	// no floating bus
	test.ExpectEquality(t, s.Results[5].Value, uint8(0xff))

	// bits 5 and 7 of the ULA port read as zero
	test.ExpectEquality(t, s.Results[6].Value&0xa0, uint8(0x00))

	// EXROM replaces the DOCK
	s = engine.NewScript(engine.Instruction{engine.Out(0x00ff, scld.CtrlEXROM)})
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, u.Memory().Slots[0].Kind, memory.EXROM)
	test.ExpectEquality(t, u.Memory().Registers.EXROM, true)
}

func TestInterruptDisable(t *testing.T) {
	u := newULA(t, &specification.SpecTC2048)
	_, err := scld.Install(u)
	test.DemandSuccess(t, err)

	s := engine.NewScript(engine.Instruction{engine.Out(0x00ff, scld.CtrlIntDisable)})
	s.AcceptInterrupts = true
	test.DemandSuccess(t, u.RunFrame(s))
	test.DemandSuccess(t, u.RunFrame(s))
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, len(s.Interrupts), 1)
}

func TestState(t *testing.T) {
	u := newULA(t, &specification.SpecTC2048)
	sc, err := scld.Install(u)
	test.DemandSuccess(t, err)

	sc.WriteCtrl(uint8(scld.ModeHiColour))
	st, err := u.Snapshot()
	test.DemandSuccess(t, err)

	sc.WriteCtrl(0)
	test.ExpectEquality(t, u.Layout(), video.Standard)

	test.DemandSuccess(t, u.Plumb(st))
	test.ExpectEquality(t, sc.Mode(), scld.ModeHiColour)
	test.ExpectEquality(t, u.Layout(), video.HiColour)
}
