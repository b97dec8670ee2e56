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

// Package blep implements band-limited step synthesis. Each change of level
// in an audio source is added to the output as a windowed sinc impulse rather
// than as a hard step, which would alias badly at audio sample rates.
//
// The output is a series of differences. The samples are produced by
// integrating the differences with a leaky (high-pass) integrator.
//
// The synthesis is completely deterministic. The same steps added in the same
// order always produce the same samples.
package blep

import (
	"fmt"
	"math"
	"slices"
)

// the number of sub-sample phases a step can occur at.
const PhaseCount = 32

// the number of samples affected by a single step.
const StepWidth = 24

// Filter coefficients.
const (
	LowPass  = 0.999
	HighPass = 0.999
)

// the table of impulse steps for every phase is the same for all instances.
var steps [PhaseCount][StepWidth]float32

func init() {
	const masterSize = StepWidth * PhaseCount
	const sineSize = 256*PhaseCount + 2
	const maxHarmonic = sineSize / 2 / PhaseCount

	var master [masterSize]float64
	for i := range master {
		master[i] = 0.5
	}

	// adjust the normal square wave's amplitude of ~0.777 to 0.5
	gain := 0.5 / 0.777

	for h := 1; h <= maxHarmonic; h += 2 {
		amplitude := gain / float64(h)
		toAngle := math.Pi * 2 / sineSize * float64(h)
		for i := range master {
			master[i] += math.Sin(float64(i-masterSize/2)*toAngle) * amplitude
		}
		gain *= LowPass
	}

	for phase := 0; phase < PhaseCount; phase++ {
		e := 1.0
		prev := 0.0
		for i := 0; i < StepWidth; i++ {
			cur := master[i*PhaseCount+(PhaseCount-1-phase)]
			delta := cur - prev
			e -= delta
			prev = cur
			steps[phase][i] = float32(delta)
		}
		steps[phase][StepWidth/2] += float32(e * 0.5)
		if phase < PhaseCount/2 {
			steps[phase][StepWidth/2-1] += float32(e * 0.5)
		} else {
			steps[phase][StepWidth/2+1] += float32(e * 0.5)
		}
	}
}

// BandLimited accumulates steps for one or more channels over a frame.
//
// The sequence of calls for every frame is: SetFrameTime() (if the frame time
// has changed), AddStep() any number of times, EndFrame(), Samples() for each
// channel and finally NextFrame().
type BandLimited struct {
	channels int
	diffs    []float32

	// the number of samples in a frame and the sample time of the start of the
	// current frame. the start time is always less than one sample
	frameTime float64
	startTime float64

	// running sum of each channel at the start of the frame and at the end of
	// the frame (if it has been calculated)
	sums    []float32
	sumsEnd []float32
	sumsOK  []bool

	// the number of samples in the ended frame. -1 if the frame has not ended
	ended int
}

// NewBandLimited is the preferred method of initialisation for the BandLimited
// type.
func NewBandLimited(channels int) *BandLimited {
	if channels < 1 {
		channels = 1
	}
	return &BandLimited{
		channels: channels,
		sums:     make([]float32, channels),
		sumsEnd:  make([]float32, channels),
		sumsOK:   make([]bool, channels),
		ended:    -1,
	}
}

func (b *BandLimited) String() string {
	return fmt.Sprintf("blep: %d channels, %.2f samples per frame", b.channels, b.frameTime)
}

// Channels returns the number of channels.
func (b *BandLimited) Channels() int {
	return b.channels
}

// Reset the synthesiser. Frame time is preserved.
func (b *BandLimited) Reset() {
	clear(b.diffs)
	clear(b.sums)
	clear(b.sumsEnd)
	clear(b.sumsOK)
	b.startTime = 0
	b.ended = -1
}

// SetFrameTime sets the length of a frame in samples. The margin is the
// maximum number of samples a frame can overrun by.
func (b *BandLimited) SetFrameTime(frameTime float64, margin float64) {
	maxSamples := int(math.Ceil(frameTime + margin))
	l := (maxSamples + StepWidth + 1) * b.channels
	if len(b.diffs) != l {
		d := make([]float32, l)
		copy(d, b.diffs)
		b.diffs = d
	}
	b.frameTime = frameTime
}

// AddStep adds a change of level to the channel at the sample time. The time
// is relative to the start of the frame.
func (b *BandLimited) AddStep(ch int, time float64, delta float32) {
	time -= b.startTime
	if time < 0 {
		time = 0
	}

	whole, frac := math.Modf(time)
	idx := int(whole)*b.channels + ch
	if idx+StepWidth*b.channels > len(b.diffs) {
		idx = len(b.diffs) - StepWidth*b.channels + ch
	}
	phase := int(frac*PhaseCount) % PhaseCount

	for i, s := range steps[phase] {
		b.diffs[idx+i*b.channels] += s * delta
	}
}

// EndFrame marks the end of the frame at the sample time. Returns the number
// of whole samples in the frame. Calling EndFrame() twice without an
// intervening call to NextFrame() will cause a panic.
func (b *BandLimited) EndFrame(time float64) int {
	if b.ended >= 0 {
		panic("blep: frame already ended")
	}
	n := int(math.Trunc(time - b.startTime))
	if n < 0 {
		n = 0
	}
	if lim := len(b.diffs)/b.channels - StepWidth - 1; n > lim {
		n = lim
	}
	b.ended = n
	return n
}

// Samples returns the samples for the channel in the ended frame. The leaky
// integrator is applied to the differences. Calling Samples() before
// EndFrame() will cause a panic.
func (b *BandLimited) Samples(ch int) []float32 {
	if b.ended < 0 {
		panic("blep: frame not ended")
	}
	out := make([]float32, b.ended)
	sum := b.sums[ch]
	for i := range out {
		sum += b.diffs[i*b.channels+ch]
		out[i] = sum
		sum *= HighPass
	}
	b.sumsEnd[ch] = sum
	b.sumsOK[ch] = true
	return out
}

// NextFrame prepares the synthesiser for the next frame. Differences that
// spill over the end of the ended frame are moved to the start of the next
// frame.
func (b *BandLimited) NextFrame() {
	if b.ended < 0 {
		panic("blep: frame not ended")
	}
	n := b.ended

	b.startTime += float64(n) - b.frameTime

	for ch := range b.sums {
		if b.sumsOK[ch] {
			b.sums[ch] = b.sumsEnd[ch]
		} else {
			sum := b.sums[ch]
			for i := 0; i < n; i++ {
				sum += b.diffs[i*b.channels+ch]
				sum *= HighPass
			}
			b.sums[ch] = sum
		}
		b.sumsOK[ch] = false
	}

	nc := n * b.channels
	sw := StepWidth * b.channels
	copy(b.diffs, b.diffs[nc:nc+sw])
	clear(b.diffs[sw : nc+sw])

	b.ended = -1
}

// State is the part of the synthesiser that carries over from one frame to
// the next.
type State struct {
	Channels  int
	FrameTime float64
	StartTime float64
	Diffs     []float32
	Sums      []float32
}

// State returns a copy of the carry-over. Calling State() between EndFrame()
// and NextFrame() will cause a panic.
func (b *BandLimited) State() State {
	if b.ended >= 0 {
		panic("blep: state of an ended frame")
	}
	return State{
		Channels:  b.channels,
		FrameTime: b.frameTime,
		StartTime: b.startTime,
		Diffs:     slices.Clone(b.diffs),
		Sums:      slices.Clone(b.sums),
	}
}

// NewFromState creates a synthesiser that continues from the State.
func NewFromState(s State) *BandLimited {
	b := NewBandLimited(s.Channels)
	b.frameTime = s.FrameTime
	b.startTime = s.StartTime
	b.diffs = slices.Clone(s.Diffs)
	copy(b.sums, s.Sums)
	return b
}
