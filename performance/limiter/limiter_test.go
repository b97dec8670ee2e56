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

package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/zxchip/performance/limiter"
	"github.com/jetsetilly/zxchip/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewLimiter(5 * time.Millisecond)
	defer lim.Stop()

	test.ExpectEquality(t, lim.Period(), 5*time.Millisecond)

	start := time.Now()
	for i := 0; i < 4; i++ {
		test.ExpectEquality(t, lim.Wait(context.Background()), true)
	}
	test.ExpectEquality(t, time.Since(start) >= 15*time.Millisecond, true)

	lim.SetPeriod(0)
	test.ExpectEquality(t, lim.Period(), time.Millisecond)
}

func TestCancel(t *testing.T) {
	lim := limiter.NewLimiter(time.Hour)
	defer lim.Stop()

	test.ExpectEquality(t, lim.HasWaited(), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.ExpectEquality(t, lim.Wait(ctx), false)
}
