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

package main

import (
	"image"
	"strings"
	"testing"

	"github.com/jetsetilly/zxchip/digest"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/peripherals/mouse"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/rewind"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func newMachine(t *testing.T, per hardware.Peripherals) *hardware.Machine {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(env, &specification.Spec48K, per)
	test.DemandSuccess(t, err)
	return m
}

// display that asks for a rewind on the nth frame.
type rewindDisplay struct {
	headless
	rewindOn int
	calls    int
	frames   int
}

func (d *rewindDisplay) SetFrame(_ *image.RGBA) {
	d.frames++
}

func (d *rewindDisplay) Joystick() kempston.Direction {
	return kempston.Fire
}

func (d *rewindDisplay) RewindRequests() int {
	d.calls++
	if d.calls == d.rewindOn {
		return 1
	}
	return 0
}

func TestParseKeys(t *testing.T) {
	mx, err := parseKeys("caps, q,backspace")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mx.Pressed(keyboard.CapsShift), true)
	test.ExpectEquality(t, mx.Pressed(keyboard.Q), true)
	test.ExpectEquality(t, mx.Pressed(keyboard.N0), true)
	test.ExpectEquality(t, mx.Pressed(keyboard.A), false)

	mx, err = parseKeys("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mx, keyboard.Matrix{})

	_, err = parseKeys("Q,F12")
	test.ExpectFailure(t, err)
}

func TestSession(t *testing.T) {
	m := newMachine(t, hardware.Peripherals{})

	h := &headless{quit: make(chan bool)}
	h.keys.Press(keyboard.Space)

	s := &session{
		m:       m,
		display: h,
		frames:  5,
		unpaced: true,
	}
	test.DemandSuccess(t, s.run())
	test.ExpectEquality(t, m.Frame(), uint64(4))
	test.ExpectEquality(t, m.CPU.Interrupts, 5)
	test.ExpectEquality(t, m.ULA.Keyboard().Pressed(keyboard.Space), true)

	// a closed quit channel ends the session after the next frame
	close(h.quit)
	s.frames = 0
	test.DemandSuccess(t, s.run())
	test.ExpectEquality(t, m.Frame(), uint64(5))
}

func TestSessionRewind(t *testing.T) {
	m := newMachine(t, hardware.Peripherals{Kempston: true})

	d := &rewindDisplay{
		headless: headless{quit: make(chan bool)},
		rewindOn: 60,
	}

	s := &session{
		m:       m,
		display: d,
		rewind:  rewind.NewRewind(m, rewind.DefaultEntries, 1),
		frames:  80,
		unpaced: true,
	}
	test.DemandSuccess(t, s.run())
	test.ExpectEquality(t, d.frames, 80)

	// the rewind request on the 60th frame (frame 59) moved the machine back
	// by 50 frames
	test.ExpectEquality(t, m.Frame(), uint64(29))
	test.ExpectEquality(t, m.CPU.Interrupts, 30)

	test.ExpectEquality(t, m.Kempston.State(), uint8(kempston.Fire))
}

// display with a pointer that moves right with the left button held.
type pointerDisplay struct {
	headless
}

func (d *pointerDisplay) Joystick() kempston.Direction {
	return kempston.Up
}

func (d *pointerDisplay) Pointer() (int, int, []mouse.Button) {
	return 4, 0, []mouse.Button{mouse.Left}
}

func TestSessionPointer(t *testing.T) {
	m := newMachine(t, hardware.Peripherals{Mouse: true, Joystick: "sinclair1"})
	test.ExpectEquality(t, m.HasJoystick(), true)

	s := &session{
		m:       m,
		display: &pointerDisplay{headless: headless{quit: make(chan bool)}},
		frames:  3,
		unpaced: true,
	}
	test.DemandSuccess(t, s.run())

	x, y := m.Mouse.Position()
	test.ExpectEquality(t, x, uint8(0x05))
	test.ExpectEquality(t, y, uint8(0xff))

	v, _, _ := m.Mouse.ReadIO(0xfadf, 0)
	test.ExpectEquality(t, v, uint8(0xfd))

	v, claimed, _ := m.Joystick.ReadIO(0xeffe, 0)
	test.ExpectEquality(t, claimed, true)
	test.ExpectEquality(t, v, uint8(0xfd))
}

func TestDeterminism(t *testing.T) {
	run := func() (string, string) {
		m := newMachine(t, hardware.Peripherals{AY: true})
		m.Env.Normalise()
		m.Reset(true)

		h := &headless{quit: make(chan bool)}
		h.keys.Press(keyboard.Enter)

		s := &session{
			m:           m,
			display:     h,
			frames:      20,
			unpaced:     true,
			videoDigest: digest.NewVideo(),
			audioDigest: digest.NewAudio(),
		}
		test.DemandSuccess(t, s.run())
		return s.videoDigest.Hash(), s.audioDigest.Hash()
	}

	v1, a1 := run()
	v2, a2 := run()
	test.ExpectEquality(t, v1, v2)
	test.ExpectEquality(t, a1, a2)
	test.ExpectInequality(t, v1, digest.NewVideo().Hash())
	test.ExpectInequality(t, a1, digest.NewAudio().Hash())
}

func TestWriteChipset(t *testing.T) {
	m := newMachine(t, hardware.Peripherals{Kempston: true})
	test.DemandSuccess(t, m.RunForFrameCount(2, nil))

	c := newChipset(m)
	test.ExpectEquality(t, c.Frames, uint64(1))
	test.ExpectEquality(t, c.Spec.ID, specification.Spec48K.ID)
	test.ExpectEquality(t, len(c.Devices), 1)

	b := &strings.Builder{}
	writeChipset(b, m)
	test.ExpectEquality(t, b.Len() > 0, true)
}

func BenchmarkFrame(b *testing.B) {
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	if err != nil {
		b.Fatal(err)
	}
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	if err != nil {
		b.Fatal(err)
	}
	m, err := hardware.NewMachine(env, &specification.Spec128K, hardware.Peripherals{})
	if err != nil {
		b.Fatal(err)
	}
	cfg := m.ULA.AudioConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.ULA.RunFrame(m.CPU); err != nil {
			b.Fatal(err)
		}
		_ = m.ULA.Render()
		_ = m.ULA.RenderAudio(cfg)
	}
}
