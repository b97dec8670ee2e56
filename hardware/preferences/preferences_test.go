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

package preferences_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/prefs"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.LateTimings.Get().(bool), false)
	test.ExpectEquality(t, p.ReadEarMode.String(), preferences.ReadEarIssue3)
	test.ExpectEquality(t, p.BorderSize.String(), preferences.BorderFull)
	test.ExpectEquality(t, p.SampleRate.Get().(int), 44100)
	test.ExpectApproximate(t, p.AudioGain.Get().(float64), 0.5, 0.0001)
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)

	err = p.BorderSize.Set("enormous")
	test.ExpectSuccess(t, curated.Is(err, preferences.InvalidValue))
	test.ExpectEquality(t, p.BorderSize.String(), preferences.BorderFull)

	err = p.BorderSize.Set(preferences.BorderSmall)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.BorderSize.String(), preferences.BorderSmall)

	err = p.ReadEarMode.Set("issue1")
	test.ExpectFailure(t, err)

	err = p.SampleRate.Set(100)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p.SampleRate.Get().(int), 44100)
}

func TestPersistence(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := preferences.NewPreferences(fs)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.LateTimings.Set(true))
	test.ExpectSuccess(t, p.ReadEarMode.Set(preferences.ReadEarClear))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferences(fs)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.LateTimings.Get().(bool), true)
	test.ExpectEquality(t, q.ReadEarMode.String(), preferences.ReadEarClear)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("hardware.latetimings::true; video.bordersize::tiny")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.LateTimings.Get().(bool), true)
	test.ExpectEquality(t, p.BorderSize.String(), preferences.BorderTiny)
}
