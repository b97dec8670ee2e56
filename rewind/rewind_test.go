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

package rewind_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/rewind"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func newMachine(t *testing.T) *hardware.Machine {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(env, &specification.Spec48K, hardware.Peripherals{})
	test.DemandSuccess(t, err)
	return m
}

func run(t *testing.T, m *hardware.Machine, r *rewind.Rewind, frames int, poke func()) {
	t.Helper()
	for i := 0; i < frames; i++ {
		test.DemandSuccess(t, m.ULA.RunFrame(m.CPU))
		if poke != nil {
			poke()
		}
		test.DemandSuccess(t, r.Record())
	}
}

func TestGotoFrame(t *testing.T) {
	m := newMachine(t)
	r := rewind.NewRewind(m, 0, 1)
	test.DemandSuccess(t, r.Reset())

	run(t, m, r, 10, func() {
		if m.Frame() == 5 {
			m.ULA.Memory().Poke(0x9000, 0x42)
		}
	})

	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, uint64(0))
	test.ExpectEquality(t, f.End, uint64(9))
	test.ExpectEquality(t, f.Current, uint64(9))

	test.DemandSuccess(t, r.GotoFrame(3))
	test.ExpectEquality(t, m.Frame(), uint64(3))
	test.ExpectEquality(t, m.CPU.Interrupts, 4)
	test.ExpectEquality(t, m.ULA.Memory().Peek(0x9000), uint8(0x00))

	test.DemandSuccess(t, r.GotoFrame(7))
	test.ExpectEquality(t, m.Frame(), uint64(7))
	test.ExpectEquality(t, m.ULA.Memory().Peek(0x9000), uint8(0x42))

	// running on from an earlier frame replaces the later entries
	run(t, m, r, 1, nil)
	test.ExpectEquality(t, r.GetFrames().End, uint64(8))

	err := r.GotoFrame(20)
	test.ExpectSuccess(t, curated.Is(err, rewind.FrameNotAvailable))

	test.DemandSuccess(t, r.GotoFrame(0))
	test.DemandSuccess(t, r.GotoLast())
	test.ExpectEquality(t, m.Frame(), uint64(8))
}

func TestEviction(t *testing.T) {
	m := newMachine(t)
	r := rewind.NewRewind(m, 4, 1)
	test.DemandSuccess(t, r.Reset())
	run(t, m, r, 10, nil)

	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, uint64(6))
	test.ExpectEquality(t, f.End, uint64(9))

	err := r.GotoFrame(2)
	test.ExpectSuccess(t, curated.Is(err, rewind.FrameNotAvailable))
}

func TestFrequency(t *testing.T) {
	m := newMachine(t)
	r := rewind.NewRewind(m, 0, 5)
	test.DemandSuccess(t, r.Reset())
	run(t, m, r, 10, nil)

	// frames 0 and 5 are recorded along with the reset state
	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, uint64(0))
	test.ExpectEquality(t, f.End, uint64(5))

	// frame 9 was never recorded but the emulation has been there
	test.DemandSuccess(t, r.GotoFrame(9))
	test.ExpectEquality(t, m.CPU.Interrupts, 10)

	test.DemandSuccess(t, r.GotoFrame(4))
	test.ExpectEquality(t, m.Frame(), uint64(4))
	test.ExpectEquality(t, m.CPU.Interrupts, 5)

	empty := rewind.NewRewind(m, 0, 0)
	test.ExpectSuccess(t, curated.Is(empty.GotoLast(), rewind.NoEntries))
}
