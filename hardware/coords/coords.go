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

// Package coords represents and can work with frame relative timestamps.
//
// Timestamps are a measurement of time. They define *when* something happened
// (a memory cycle, a border change, a port write) relative to the start of
// the video frame. Every part of the emulation is expressed in this unit.
//
// A Timestamp is ordered lexicographically by Line and then by Cycle. It can
// be converted losslessly to and from a linear cycle count with the Geometry
// of the chipset. An absolute cycle count, from power-on, is also available
// so that devices running with different frame lengths can share a
// comparable clock.
package coords

import (
	"fmt"
	"math"

	"github.com/jetsetilly/zxchip/curated"
)

// TimingViolation is the curated error pattern used when a timestamp has been
// produced or queried outside the bounds of the frame. It is always the result
// of a caller losing frame synchronisation.
const TimingViolation = "timing violation: %v"

// Geometry of a video frame in CPU cycles.
type Geometry struct {
	LinesPerFrame int
	CyclesPerLine int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d (%d cycles)", g.LinesPerFrame, g.CyclesPerLine, g.EOF())
}

// EOF returns the number of cycles in a frame.
func (g Geometry) EOF() int {
	return g.LinesPerFrame * g.CyclesPerLine
}

// Timestamp is a frame relative clock value.
type Timestamp struct {
	Line  int
	Cycle int
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("Line: %03d  Cycle: %03d", ts.Line, ts.Cycle)
}

// Valid returns true if the timestamp is inside the frame.
func (g Geometry) Valid(ts Timestamp) bool {
	return ts.Line >= 0 && ts.Line < g.LinesPerFrame && ts.Cycle >= 0 && ts.Cycle < g.CyclesPerLine
}

// FromLinear converts a count of cycles since the start of the frame to a
// Timestamp. Values outside of the frame are normalised but are not wrapped,
// so a value of EOF returns a timestamp with a Line equal to LinesPerFrame.
func (g Geometry) FromLinear(t int) Timestamp {
	line := t / g.CyclesPerLine
	cycle := t % g.CyclesPerLine
	if cycle < 0 {
		cycle += g.CyclesPerLine
		line--
	}
	return Timestamp{Line: line, Cycle: cycle}
}

// Linear converts a Timestamp to the number of cycles since the start of the
// frame.
func (g Geometry) Linear(ts Timestamp) int {
	return ts.Line*g.CyclesPerLine + ts.Cycle
}

// Add a number of cycles to the timestamp. The result is wrapped into the
// frame and the number of frame boundaries crossed is returned. Negative
// values of cycles are allowed.
func (g Geometry) Add(ts Timestamp, cycles int) (Timestamp, int) {
	eof := g.EOF()
	t := g.Linear(ts) + cycles
	frames := t / eof
	t %= eof
	if t < 0 {
		t += eof
		frames--
	}
	return g.FromLinear(t), frames
}

// Diff returns the number of cycles between B and A. The result is negative
// if A is earlier than B.
func (g Geometry) Diff(A, B Timestamp) int {
	return g.Linear(A) - g.Linear(B)
}

// Absolute converts a frame number and a frame relative timestamp to the
// number of cycles since power-on. An error is returned if the result cannot
// be represented.
func (g Geometry) Absolute(frame uint64, ts Timestamp) (uint64, error) {
	eof := uint64(g.EOF())
	t := g.Linear(ts)
	if t < 0 {
		return 0, curated.Errorf(TimingViolation, fmt.Sprintf("negative timestamp (%s)", ts))
	}
	if frame > (math.MaxUint64-uint64(t))/eof {
		return 0, curated.Errorf(TimingViolation, fmt.Sprintf("absolute clock overflow (frame %d)", frame))
	}
	return frame*eof + uint64(t), nil
}

// FromAbsolute converts the number of cycles since power-on to a frame number
// and a frame relative timestamp.
func (g Geometry) FromAbsolute(ticks uint64) (uint64, Timestamp) {
	eof := uint64(g.EOF())
	return ticks / eof, g.FromLinear(int(ticks % eof))
}

// Compare returns -1 if A is earlier than B, 1 if A is later than B and 0 if
// they are equal.
func Compare(A, B Timestamp) int {
	switch {
	case A.Line < B.Line:
		return -1
	case A.Line > B.Line:
		return 1
	case A.Cycle < B.Cycle:
		return -1
	case A.Cycle > B.Cycle:
		return 1
	}
	return 0
}

// Equal returns true if A and B are the same timestamp.
func Equal(A, B Timestamp) bool {
	return A == B
}

// GreaterThan returns true if A is later than B.
func GreaterThan(A, B Timestamp) bool {
	return Compare(A, B) > 0
}

// GreaterThanOrEqual returns true if A is later than or equal to B.
func GreaterThanOrEqual(A, B Timestamp) bool {
	return Compare(A, B) >= 0
}
