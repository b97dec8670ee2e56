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

package bus

import (
	"fmt"
	"math"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/coords"
)

// Representation is the way a device measures time.
type Representation int

// List of valid Representation values.
const (
	// cycles since the start of the current frame. values can be larger than
	// the length of the frame if an instruction finishes after the end of the
	// frame
	FrameCycles Representation = iota

	// cycles since power-on
	MachineCycles

	// the line number in the upper 32 bits and the cycle within the line in
	// the lower 32 bits
	FrameLines
)

func (r Representation) String() string {
	switch r {
	case FrameCycles:
		return "frame cycles"
	case MachineCycles:
		return "machine cycles"
	case FrameLines:
		return "frame lines"
	}
	return "unknown representation"
}

// Time is the shared reference clock from which the local time of every
// device is derived.
type Time struct {
	Geometry coords.Geometry

	// the number of completed frames since power-on
	Frame uint64

	// the time within the current frame. the Line field can be equal to
	// LinesPerFrame at the end of a frame
	TS coords.Timestamp
}

func (t Time) String() string {
	return fmt.Sprintf("Frame: %d  %s", t.Frame, t.TS)
}

// Convert the reference time to the device's local representation. An error
// is returned if the local time cannot be represented.
func Convert(t Time, r Representation) (int64, error) {
	switch r {
	case FrameCycles:
		return int64(t.Geometry.Linear(t.TS)), nil

	case MachineCycles:
		abs, err := t.Geometry.Absolute(t.Frame, t.TS)
		if err != nil {
			return 0, err
		}
		if abs > math.MaxInt64 {
			return 0, curated.Errorf(coords.TimingViolation, fmt.Sprintf("machine cycles overflow (%s)", t))
		}
		return int64(abs), nil

	case FrameLines:
		if t.TS.Line < 0 || t.TS.Cycle < 0 {
			return 0, curated.Errorf(coords.TimingViolation, fmt.Sprintf("negative timestamp (%s)", t))
		}
		return int64(t.TS.Line)<<32 | int64(t.TS.Cycle), nil
	}

	return 0, curated.Errorf(coords.TimingViolation, fmt.Sprintf("unknown clock representation (%d)", r))
}
