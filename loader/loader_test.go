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

package loader_test

import (
	"bytes"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/loader"
	"github.com/jetsetilly/zxchip/snapshot"
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

func fill(n int, v uint8) []byte {
	return bytes.Repeat([]byte{v}, n)
}

func TestNewLoader(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := loader.NewLoader(fs, "", "AUTO")
	test.ExpectSuccess(t, curated.Is(err, loader.NoFilename))

	_, err = loader.NewLoader(fs, "game.tzx", "AUTO")
	test.ExpectSuccess(t, curated.Is(err, loader.UnknownMedia))

	_, err = loader.NewLoader(fs, "game.bin", "cartridge")
	test.ExpectSuccess(t, curated.Is(err, loader.UnknownMedia))

	ld, err := loader.NewLoader(fs, "dir/48.rom", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ld.Media, loader.ROM)
	test.ExpectEquality(t, ld.ShortName(), "48")

	ld, err = loader.NewLoader(fs, "game.bin", "scr")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ld.Media, loader.Screen)

	ld, err = loader.NewLoader(fs, "Game.MP3", "auto")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ld.Media, loader.Tape)

	test.ExpectFailure(t, ld.Load())
	test.ExpectEquality(t, ld.HasLoaded(), false)
}

func TestROM(t *testing.T) {
	fs := afero.NewMemMapFs()
	rom := fill(memory.BankSize, 0xf3)
	test.DemandSuccess(t, afero.WriteFile(fs, "48.rom", rom, 0o644))
	test.DemandSuccess(t, afero.WriteFile(fs, "128.rom", append(fill(memory.BankSize, 0x01), fill(memory.BankSize, 0x02)...), 0o644))
	test.DemandSuccess(t, afero.WriteFile(fs, "odd.rom", fill(memory.BankSize+1, 0x00), 0o644))

	u := newULA(t, &specification.Spec48K)
	ld, err := loader.NewLoader(fs, "48.rom", "AUTO")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ld.Attach(u))
	test.ExpectEquality(t, u.Memory().Peek(0x0000), uint8(0xf3))
	test.ExpectEquality(t, u.Memory().Peek(0x3fff), uint8(0xf3))
	test.ExpectEquality(t, len(ld.Hash), 40)

	// a 32K image is too large for the 48K
	ld, err = loader.NewLoader(fs, "128.rom", "AUTO")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(ld.Attach(u), loader.WrongSize))

	// but fits the 128K. ROM 0 is paged in after reset
	u = newULA(t, &specification.Spec128K)
	test.DemandSuccess(t, ld.Attach(u))
	test.ExpectEquality(t, u.Memory().Peek(0x0000), uint8(0x01))
	test.ExpectEquality(t, u.Memory().ROM[1].Data[0], uint8(0x02))

	ld, err = loader.NewLoader(fs, "odd.rom", "AUTO")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(ld.Attach(u), loader.WrongSize))

	// hash is checked
	ld, err = loader.NewLoader(fs, "48.rom", "AUTO")
	test.DemandSuccess(t, err)
	ld.Hash = "0000"
	test.ExpectSuccess(t, curated.Is(ld.Load(), loader.HashMismatch))
}

func TestScreen(t *testing.T) {
	fs := afero.NewMemMapFs()
	scr := append(fill(6144, 0x81), fill(768, 0x38)...)
	test.DemandSuccess(t, afero.WriteFile(fs, "pic.scr", scr, 0o644))
	test.DemandSuccess(t, afero.WriteFile(fs, "short.scr", scr[:6000], 0o644))

	u := newULA(t, &specification.Spec48K)
	ld, err := loader.NewLoader(fs, "pic.scr", "AUTO")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ld.Attach(u))
	test.ExpectEquality(t, u.Memory().Peek(0x4000), uint8(0x81))
	test.ExpectEquality(t, u.Memory().Peek(0x57ff), uint8(0x81))
	test.ExpectEquality(t, u.Memory().Peek(0x5800), uint8(0x38))
	test.ExpectEquality(t, u.Memory().Peek(0x5aff), uint8(0x38))
	test.ExpectEquality(t, u.Memory().Peek(0x5b00), uint8(0x00))

	ld, err = loader.NewLoader(fs, "short.scr", "AUTO")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(ld.Attach(u), loader.WrongSize))
}

func TestTape(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("tone.wav")
	test.DemandSuccess(t, err)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		SourceBitDepth: 16,
		Data:           make([]int, 1000),
	}
	for i := range buf.Data {
		if (i/100)&1 == 1 {
			buf.Data[i] = 8000
		} else {
			buf.Data[i] = -8000
		}
	}
	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	u := newULA(t, &specification.Spec48K)
	ld, err := loader.NewLoader(fs, "tone.wav", "AUTO")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ld.Attach(u))
	test.DemandEquality(t, ld.Tape != nil, true)

	_, ok := u.Chain().Lookup("tone")
	test.ExpectEquality(t, ok, true)

	// the same tape cannot be attached twice
	test.ExpectFailure(t, ld.Attach(u))
}

func TestDock(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.DemandSuccess(t, afero.WriteFile(fs, "cart.dck", fill(16, 0x55), 0o644))

	ld, err := loader.NewLoader(fs, "cart.dck", "AUTO")
	test.DemandSuccess(t, err)

	u := newULA(t, &specification.Spec48K)
	test.ExpectFailure(t, ld.Attach(u))

	u = newULA(t, &specification.SpecTC2048)
	test.DemandSuccess(t, ld.Attach(u))
	test.ExpectEquality(t, u.Memory().DOCK.Data[0], uint8(0x55))
	test.ExpectEquality(t, u.Memory().DOCK.Data[16], uint8(0xff))
}

func TestSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()

	u := newULA(t, &specification.Spec48K)
	u.Memory().Poke(0x8000, 0x99)
	s, err := u.Snapshot()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, snapshot.Save(fs, "state.snap", s))

	o := newULA(t, &specification.Spec48K)
	ld, err := loader.NewLoader(fs, "state.snap", "AUTO")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ld.Attach(o))
	test.ExpectEquality(t, o.Memory().Peek(0x8000), uint8(0x99))

	o = newULA(t, &specification.Spec128K)
	test.ExpectSuccess(t, curated.Is(ld.Attach(o), ula.IncompatibleState))
}
