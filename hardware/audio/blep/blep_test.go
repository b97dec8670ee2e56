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

package blep_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/hardware/audio/blep"
	"github.com/jetsetilly/zxchip/test"
)

// a single step settles at the level of the step.
func TestStep(t *testing.T) {
	b := blep.NewBandLimited(1)
	b.SetFrameTime(882, 2)
	b.AddStep(0, 100.5, 1.0)
	n := b.EndFrame(882)
	test.ExpectEquality(t, n, 882)

	s := b.Samples(0)
	test.ExpectEquality(t, len(s), 882)

	// nothing before the impulse
	test.ExpectApproximate(t, s[50], 0.0, 0.0001)

	// the leaky integrator has barely started to decay just after the
	// impulse has settled
	test.ExpectApproximate(t, s[100+blep.StepWidth], 1.0, 0.05)

	// and has decayed towards zero by the end of the frame
	test.ExpectSuccess(t, s[881] < s[100+blep.StepWidth])
	b.NextFrame()
}

func TestDeterminism(t *testing.T) {
	run := func() []float32 {
		b := blep.NewBandLimited(2)
		b.SetFrameTime(882.3, 2)
		var out []float32
		for f := 0; f < 5; f++ {
			for i := 0; i < 20; i++ {
				d := float32(0.5)
				if i&1 == 1 {
					d = -0.5
				}
				b.AddStep(i&1, float64(i*40)+0.37*float64(f), d)
			}
			b.EndFrame(882.3)
			out = append(out, b.Samples(0)...)
			out = append(out, b.Samples(1)...)
			b.NextFrame()
		}
		return out
	}

	a := run()
	b := run()
	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestFrameLength(t *testing.T) {
	b := blep.NewBandLimited(1)
	b.SetFrameTime(882.25, 2)

	total := 0
	for f := 0; f < 10; f++ {
		total += b.EndFrame(882.25)
		b.NextFrame()
	}

	// fractional samples are carried from frame to frame
	test.ExpectEquality(t, total, 8822)
}

func TestPanic(t *testing.T) {
	b := blep.NewBandLimited(1)
	b.SetFrameTime(100, 2)
	b.EndFrame(100)

	defer func() {
		test.ExpectSuccess(t, recover() != nil)
	}()
	b.EndFrame(100)
}

func TestState(t *testing.T) {
	frame := func(b *blep.BandLimited, f int) []float32 {
		// the final step of every frame spills into the next frame
		b.AddStep(0, 10, 0.5)
		b.AddStep(0, 875.5+0.1*float64(f), -0.5)
		b.EndFrame(882.3)
		s := b.Samples(0)
		b.NextFrame()
		return s
	}

	b := blep.NewBandLimited(1)
	b.SetFrameTime(882.3, 2)
	for f := 0; f < 3; f++ {
		frame(b, f)
	}

	state := b.State()

	var a []float32
	for f := 3; f < 6; f++ {
		a = append(a, frame(b, f)...)
	}

	c := blep.NewFromState(state)
	var r []float32
	for f := 3; f < 6; f++ {
		r = append(r, frame(c, f)...)
	}

	test.DemandEquality(t, len(a), len(r))
	for i := range a {
		if a[i] != r[i] {
			t.Fatalf("sample %d differs", i)
		}
	}

	// the state is a copy
	state.Diffs[0] = 100
	test.ExpectInequality(t, c.State().Diffs[0], float32(100))
}
