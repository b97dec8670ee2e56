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

package performance_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/performance"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func TestRate(t *testing.T) {
	spec := &specification.Spec48K
	test.ExpectApproximate(t, performance.FramesPerSecond(spec), 50.08, 0.01)

	r := performance.Rate{Frames: 100, Duration: time.Second}
	test.ExpectEquality(t, r.FPS(), 100.0)
	test.ExpectApproximate(t, r.Accuracy(spec), 199.7, 0.01)
	test.ExpectEquality(t, r.Summary(spec), "100.00 fps (100 frames in 1.00 seconds) 199.7%")

	r.Duration = 0
	test.ExpectEquality(t, r.FPS(), 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, trace")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfile("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfile("all")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	_, err = performance.ParseProfile("cpu,gpu")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(env, &specification.Spec48K, hardware.Peripherals{})
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.DemandSuccess(t, performance.Check(w, m, performance.ProfileNone, 10*time.Millisecond, 50*time.Millisecond))
	test.ExpectEquality(t, w.Contains(" fps ("), true)
	test.ExpectEquality(t, m.Frame() > 0, true)
}
