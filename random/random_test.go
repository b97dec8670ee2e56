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

package random_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/zxchip/random"
	"github.com/jetsetilly/zxchip/test"
)

type clock struct {
	ticks uint64
}

func (c *clock) Ticks() uint64 {
	return c.ticks
}

func TestRandom(t *testing.T) {
	a := random.NewRandom(&clock{ticks: 69888 * 100})
	b := random.NewRandom(&clock{ticks: 69888 * 100})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}
}

func TestFill(t *testing.T) {
	a := random.NewRandom(nil)
	b := random.NewRandom(nil)
	a.ZeroSeed = true
	b.ZeroSeed = true

	x := make([]uint8, 1024)
	y := make([]uint8, 1024)
	a.Fill(x)
	b.Fill(y)
	test.ExpectSuccess(t, bytes.Equal(x, y))
}
