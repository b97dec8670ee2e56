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

package performance

import (
	"fmt"
	"time"

	"github.com/jetsetilly/zxchip/hardware/specification"
)

// FramesPerSecond returns the number of frames the machine produces in one
// second of emulated time.
func FramesPerSecond(spec *specification.Spec) float64 {
	return spec.ClockHz() / float64(spec.EOF())
}

// Rate is the number of frames emulated over a period of host time.
type Rate struct {
	Frames   int
	Duration time.Duration
}

// FPS returns the aggregate frames per second. Zero if no time has passed.
func (r Rate) FPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
}

// Accuracy returns the aggregate rate as a percentage of the rate of the
// emulated machine.
func (r Rate) Accuracy(spec *specification.Spec) float64 {
	return 100 * r.FPS() / FramesPerSecond(spec)
}

// Summary of the rate for the end of a performance run.
func (r Rate) Summary(spec *specification.Spec) string {
	return fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%", r.FPS(), r.Frames, r.Duration.Seconds(), r.Accuracy(spec))
}
