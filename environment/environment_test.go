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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

func TestLogging(t *testing.T) {
	p, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)

	main, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	thumb, err := environment.NewEnvironment("thumbnail", p)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, main.IsMainEmulation())
	test.ExpectFailure(t, thumb.IsMainEmulation())
	test.ExpectSuccess(t, thumb.IsEmulation("thumbnail"))

	lg := logger.NewLogger(10)
	w := &test.CompareWriter{}

	lg.Log(thumb, "test", "thumbnail entry")
	lg.Write(w)
	test.ExpectSuccess(t, w.Compare(""))

	lg.Log(main, "test", "main entry")
	lg.Write(w)
	test.ExpectSuccess(t, w.Compare("test: main entry\n"))
}

func TestNormalise(t *testing.T) {
	p, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.LateTimings.Set(true))
	env.Normalise()
	test.ExpectSuccess(t, env.Random.ZeroSeed)
	test.ExpectEquality(t, p.LateTimings.Get().(bool), false)
}
