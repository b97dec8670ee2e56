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

// Package contention computes the number of wait states the ULA imposes on
// the CPU when the video circuitry and the CPU both want the bus.
//
// A Window is created once for a machine model and is never changed. Delays
// are looked up by the linear cycle number of the first phase of the CPU
// cycle being delayed.
package contention

import (
	"fmt"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/hardware/specification"
)

// the number of display lines affected by contention.
const contendedLines = 192

// the number of cycles in a line affected by contention. for the ULA the
// final two entries of the last group of eight have a delay of zero.
const contendedCycles = 128

// MaxDelay is the largest delay returned by Mem(). Only the +3 gate array
// delays by seven cycles.
const MaxDelay = 7

// Window is an immutable table of contention delays for a machine model.
type Window struct {
	geom  coords.Geometry
	io    bool
	delay []uint8
}

// NewWindow is the preferred method of initialisation for the Window type.
func NewWindow(spec *specification.Spec) *Window {
	w := &Window{
		geom:  spec.Geometry,
		io:    spec.IOContention,
		delay: make([]uint8, spec.EOF()),
	}

	for l := 0; l < contendedLines; l++ {
		start := spec.ContentionStart() + l*spec.Geometry.CyclesPerLine
		for c := 0; c < contendedCycles; c++ {
			w.delay[start+c] = uint8(spec.ContentionPattern[c&7])
		}
	}

	return w
}

func (w *Window) String() string {
	return fmt.Sprintf("contention %s", w.geom)
}

// Geometry returns the frame geometry the window was created for.
func (w *Window) Geometry() coords.Geometry {
	return w.geom
}

// Mem returns the delay imposed on a memory cycle to a contended address
// starting at linear cycle t. Values of t outside of the frame are a
// programming error and will cause a panic.
func (w *Window) Mem(t int) int {
	if t < 0 || t >= len(w.delay) {
		panic(curated.Errorf(coords.TimingViolation, fmt.Sprintf("contention lookup at cycle %d (%s)", t, w.geom)))
	}
	return int(w.delay[t])
}

// Timestamped is the same as Mem() but for a Timestamp.
func (w *Window) Timestamped(ts coords.Timestamp) int {
	if !w.geom.Valid(ts) {
		panic(curated.Errorf(coords.TimingViolation, fmt.Sprintf("contention lookup at %s (%s)", ts, w.geom)))
	}
	return int(w.delay[w.geom.Linear(ts)])
}

// the delay at a cycle that may have been pushed past the end of the frame
// by earlier phases of the same access.
func (w *Window) wrapped(t int) int {
	return int(w.delay[t%len(w.delay)])
}

// IO returns the total delay imposed on a four cycle I/O access starting at
// linear cycle t. The pattern of the access depends on the partial decoding
// of the port address:
//
//	high byte contended, even port    C:1, C:3
//	high byte contended, odd port     C:1, C:1, C:1, C:1
//	high byte uncontended, even port  N:1, C:3
//	high byte uncontended, odd port   N:4
//
// The high byte is contended if, as an address, it falls in contended memory.
// Values of t outside of the frame are a programming error and will cause a
// panic.
func (w *Window) IO(t int, port uint16, highContended bool) int {
	first, rest := w.IOPhases(t, port, highContended)
	return first + rest
}

// IOPhases is the same as IO() but the delay is split into the part imposed
// before IORQ goes low and the part imposed after it. The device is sampled
// one cycle after the first part of the delay.
func (w *Window) IOPhases(t int, port uint16, highContended bool) (first int, rest int) {
	d := w.Mem(t)
	if !w.io {
		return 0, 0
	}

	if highContended {
		first = d
	}

	// cycle at which IORQ goes low
	t += first + 1

	switch {
	case port&0x0001 == 0:
		rest = w.wrapped(t)

	case highContended:
		for i := 1; i < 4; i++ {
			d = w.wrapped(t)
			rest += d
			t += d + 1
		}
	}

	return first, rest
}
