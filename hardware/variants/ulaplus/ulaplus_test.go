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

package ulaplus_test

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/hardware/variants/scld"
	"github.com/jetsetilly/zxchip/hardware/variants/ulaplus"
	"github.com/jetsetilly/zxchip/hardware/video"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func newULA(t *testing.T) *ula.ULA {
	t.Helper()
	return newModel(t, &specification.Spec48K)
}

func newModel(t *testing.T, spec *specification.Spec) *ula.ULA {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	u, err := ula.NewULA(env, spec)
	test.DemandSuccess(t, err)
	return u
}

func TestGRB(t *testing.T) {
	test.ExpectEquality(t, ulaplus.GRB(0x00), black)
	test.ExpectEquality(t, ulaplus.GRB(0x1c), red)
	test.ExpectEquality(t, ulaplus.GRB(0xff), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	test.ExpectEquality(t, ulaplus.GRB(0xe0), color.RGBA{G: 255, A: 255})
	test.ExpectEquality(t, ulaplus.GRB(0x01), color.RGBA{B: 109, A: 255})
}

func TestPorts(t *testing.T) {
	u := newULA(t)
	plus, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	_, err = ulaplus.Install(u)
	test.ExpectFailure(t, err)

	s := engine.NewScript(
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
		engine.Instruction{engine.Out(ulaplus.DataPort, ulaplus.ModePalette)},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x08)},
		engine.Instruction{engine.Out(ulaplus.DataPort, 0x1c)},
		engine.Instruction{engine.In(ulaplus.DataPort)},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
		engine.Instruction{engine.In(ulaplus.DataPort)},
	)
	test.DemandSuccess(t, u.RunFrame(s))

	test.ExpectEquality(t, plus.Mode(), uint8(ulaplus.ModePalette))
	test.ExpectEquality(t, plus.Palette(8), uint8(0x1c))
	test.DemandEquality(t, len(s.Results), 7)
	test.ExpectEquality(t, s.Results[4].Value, uint8(0x1c))
	test.ExpectEquality(t, s.Results[6].Value, uint8(ulaplus.ModePalette))

	// border uses entry 8 and so does the paper of attribute zero
	img := u.Render()
	test.ExpectEquality(t, img.RGBAAt(0, 0), red)
	test.ExpectEquality(t, img.RGBAAt(48, 48), red)

	plus.SetEnabled(false)
	img = u.Render()
	test.ExpectEquality(t, img.RGBAAt(0, 0), specification.Spec48K.Colors[0])
	test.ExpectEquality(t, plus.String(), "ulaplus (disabled)")

	u.Reset(true)
	test.ExpectEquality(t, plus.Mode(), uint8(0))
	test.ExpectEquality(t, plus.Enabled(), false)
}

func TestMidFrame(t *testing.T) {
	u := newULA(t)
	_, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	s := engine.NewScript(
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
		engine.Instruction{engine.Out(ulaplus.DataPort, ulaplus.ModePalette)},
		engine.Instruction{engine.Internal(0x8000, 40000)},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x08)},
		engine.Instruction{engine.Out(ulaplus.DataPort, 0x1c)},
	)
	test.DemandSuccess(t, u.RunFrame(s))

	img := u.Render()
	test.ExpectEquality(t, img.RGBAAt(0, 0), black)
	test.ExpectEquality(t, img.RGBAAt(0, img.Bounds().Dy()-1), red)

	// the next frame starts with the changed palette
	test.DemandSuccess(t, u.RunFrame(s))
	img = u.Render()
	test.ExpectEquality(t, img.RGBAAt(0, 0), red)
}

func TestMidLine(t *testing.T) {
	u := newULA(t)
	_, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	// the data port is sampled at cycle 3598. the border chunk for x=72 on
	// the first line of the image is output at cycle 3600
	s := engine.NewScript(
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
		engine.Instruction{engine.Out(ulaplus.DataPort, ulaplus.ModePalette)},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x08)},
		engine.Instruction{engine.Internal(0x0000, 3585)},
		engine.Instruction{engine.Out(ulaplus.DataPort, 0x1c)},
	)
	test.DemandSuccess(t, u.RunFrame(s))

	img := u.Render()
	test.ExpectEquality(t, img.RGBAAt(71, 0), black)
	test.ExpectEquality(t, img.RGBAAt(72, 0), red)
	test.ExpectEquality(t, img.RGBAAt(0, 1), red)
}

func TestGreyscale(t *testing.T) {
	u := newULA(t)
	_, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	// greyscale without the palette applies to the standard colours
	s := engine.NewScript(
		engine.Instruction{engine.Out(0x00fe, 0x02)},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
		engine.Instruction{engine.Out(ulaplus.DataPort, ulaplus.ModeGreyscale)},
	)
	test.DemandSuccess(t, u.RunFrame(s))

	img := u.Render()
	grey := color.RGBA{R: 68, G: 68, B: 68, A: 255}
	test.ExpectEquality(t, ulaplus.Grey(specification.Spec48K.Colors[2]), grey)
	test.ExpectEquality(t, img.RGBAAt(0, 0), grey)
}

func TestSCLDMode(t *testing.T) {
	u := newULA(t)
	plus, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	// the mode group of the register port selects a screen mode
	s := engine.NewScript(engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x41)})
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, u.Layout(), video.Alternate)

	// without an SCLD the control port is decoded by ULAplus. it cannot be
	// read by default
	s = engine.NewScript(
		engine.Instruction{engine.Out(0x00ff, uint8(scld.ModeHiColour))},
		engine.Instruction{engine.In(0x00ff)},
	)
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, u.Layout(), video.HiColour)
	test.ExpectEquality(t, plus.SCLDMode(), uint8(scld.ModeHiColour))
	test.DemandEquality(t, len(s.Results), 2)
	test.ExpectEquality(t, s.Results[1].Value, uint8(0xff))

	plus.SetReadSCLDMode(true)
	s.Reset()
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, s.Results[1].Value, uint8(scld.ModeHiColour))

	u.Reset(true)
	test.ExpectEquality(t, plus.SCLDMode(), uint8(0))
	test.ExpectEquality(t, u.Layout(), video.Standard)
}

func TestWithSCLD(t *testing.T) {
	u := newModel(t, &specification.SpecTC2048)
	sc, err := scld.Install(u)
	test.DemandSuccess(t, err)
	plus, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	// the SCLD keeps the control port. the mode group of the register port
	// is combined with the SCLD screen mode
	s := engine.NewScript(
		engine.Instruction{engine.Out(0x00ff, uint8(scld.ModeAlternate))},
		engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x42)},
	)
	test.DemandSuccess(t, u.RunFrame(s))
	test.ExpectEquality(t, sc.Ctrl(), uint8(scld.ModeAlternate))
	test.ExpectEquality(t, plus.SCLDMode(), uint8(scld.ModeAlternate))
	test.ExpectEquality(t, u.Layout(), video.HiColour)
}

func TestDisabled(t *testing.T) {
	run := func(install bool) ([]uint8, uint64) {
		u := newULA(t)
		if install {
			plus, err := ulaplus.Install(u)
			test.DemandSuccess(t, err)
			plus.SetEnabled(false)
		}
		s := engine.NewScript(
			engine.Instruction{engine.Out(0x00fe, 0x05)},
			engine.Instruction{engine.Write(0x4000, 0xf0)},
			engine.Instruction{engine.Out(ulaplus.RegisterPort, 0x40)},
			engine.Instruction{engine.Out(ulaplus.DataPort, ulaplus.ModePalette)},
			engine.Instruction{engine.In(ulaplus.DataPort)},
			engine.Instruction{engine.Internal(0x4000, 20000)},
		)
		s.Loop = true
		var pix []uint8
		for i := 0; i < 3; i++ {
			test.DemandSuccess(t, u.RunFrame(s))
			pix = append(pix, u.Render().Pix...)
		}
		return pix, u.Ticks()
	}

	a, ta := run(false)
	b, tb := run(true)
	test.ExpectEquality(t, ta, tb)
	test.ExpectSuccess(t, bytes.Equal(a, b))
}

func TestState(t *testing.T) {
	u := newULA(t)
	plus, err := ulaplus.Install(u)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, plus.WritePort(ulaplus.RegisterPort, 0x05, 0))
	test.ExpectSuccess(t, plus.WritePort(ulaplus.DataPort, 0xaa, 100))
	test.ExpectSuccess(t, plus.WritePort(ulaplus.RegisterPort, 0x40, 0))
	test.ExpectSuccess(t, plus.WritePort(ulaplus.DataPort, 0x03, 200))

	data, err := plus.MarshalBinary()
	test.DemandSuccess(t, err)

	o, err := ulaplus.Install(newULA(t))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, o.UnmarshalBinary(data))
	test.ExpectEquality(t, o.Palette(5), uint8(0xaa))
	test.ExpectEquality(t, o.Mode(), uint8(0x03))

	// the screen mode written to the SCLD control port is kept
	test.ExpectSuccess(t, plus.WritePort(0x00ff, uint8(scld.ModeAlternate), 300))
	data, err = plus.MarshalBinary()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, o.UnmarshalBinary(data))
	test.ExpectEquality(t, o.SCLDMode(), uint8(scld.ModeAlternate))

	test.ExpectFailure(t, o.UnmarshalBinary([]byte{0x01, 0x02}))
}
