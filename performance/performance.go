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
	"io"
	"time"

	"github.com/jetsetilly/zxchip/govern"
	"github.com/jetsetilly/zxchip/hardware"
)

// Check the performance of the emulator by running the machine as quickly as
// possible for the specified duration. Measurement starts after the leadtime
// has elapsed, allowing the frame rate to settle.
//
// Video is rendered every frame. Audio is rendered unless the machine is in
// turbo mode.
func Check(output io.Writer, m *hardware.Machine, profile Profile, leadtime time.Duration, duration time.Duration) error {
	var startFrame uint64
	var numFrames int

	runner := func() error {
		lead := time.After(leadtime)
		var done <-chan time.Time
		var start time.Time

		cfg := m.ULA.AudioConfig()

		return m.Run(func() (govern.State, error) {
			_ = m.ULA.Render()
			_ = m.ULA.RenderAudio(cfg)

			select {
			case <-lead:
				// the measurement period begins
				startFrame = m.Frame()
				start = time.Now()
				done = time.After(duration)
				lead = nil
			case <-done:
				numFrames = int(m.Frame() - startFrame)
				duration = time.Since(start)
				return govern.Ending, nil
			default:
			}
			return govern.Running, nil
		})
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return err
	}

	rate := Rate{Frames: numFrames, Duration: duration}
	fmt.Fprintln(output, rate.Summary(m.ULA.Spec()))

	return nil
}
