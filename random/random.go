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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Source provides the current emulation time as a single value. The ULA
// implements this interface by reporting the number of cycles since power-on.
type Source interface {
	Ticks() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	src Source

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type. The
// source can be nil and supplied later with SetSource().
func NewRandom(src Source) *Random {
	return &Random{
		src: src,
	}
}

// SetSource changes the time source for the random number generator.
func (rnd *Random) SetSource(src Source) {
	rnd.src = src
}

func (rnd *Random) rand() *rand.Rand {
	var t int64
	if rnd.src != nil {
		t = int64(rnd.src.Ticks())
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(t))
	}
	return rand.New(rand.NewSource(baseSeed + t))
}

// Intn returns a random number in the range [0,n).
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Fill the byte slice with random data. The entire slice is filled from the
// same generator.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand()
	for i := range b {
		b[i] = uint8(r.Intn(256))
	}
}
