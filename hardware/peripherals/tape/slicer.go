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

package tape

import "math"

// Hysteresis is the width of the dead band of the slicer as a fraction of the
// peak amplitude of the recording.
const Hysteresis = 0.1

// Slice converts the recording into a list of pulses. The first pulse is at
// the low level and levels alternate after that. The first pulse has a
// duration of zero if the recording starts at the high level. Durations are measured in
// cycles of a clock running at clockHz.
//
// The level changes when the signal moves more than the hysteresis above or
// below the mean of the recording.
func Slice(pcm PCM, clockHz float64) []uint32 {
	if len(pcm.Data) == 0 || pcm.SampleRate <= 0 {
		return nil
	}

	var mean float64
	for _, v := range pcm.Data {
		mean += float64(v)
	}
	mean /= float64(len(pcm.Data))

	var peak float64
	for _, v := range pcm.Data {
		peak = math.Max(peak, math.Abs(float64(v)-mean))
	}
	if peak == 0 {
		return nil
	}

	hi := mean + peak*Hysteresis
	lo := mean - peak*Hysteresis
	cyclesPerSample := clockHz / pcm.SampleRate

	var pulses []uint32
	level := false

	// the edge positions are rounded from the exact position so that errors
	// do not accumulate
	var prev int64
	for i, v := range pcm.Data {
		s := float64(v)
		if (!level && s > hi) || (level && s < lo) {
			edge := int64(math.Round(float64(i) * cyclesPerSample))
			pulses = append(pulses, uint32(edge-prev))
			prev = edge
			level = !level
		}
	}

	end := int64(math.Round(float64(len(pcm.Data)) * cyclesPerSample))
	if end > prev {
		pulses = append(pulses, uint32(end-prev))
	}

	return pulses
}
