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

package audio

import (
	"github.com/jetsetilly/zxchip/hardware/audio/blep"
	"github.com/jetsetilly/zxchip/hardware/specification"
)

// the maximum number of cycles an instruction can overrun the end of the
// frame by.
const marginCycles = 2 * 23

// Source is the interface for anything that can be rendered by the Renderer.
// The EdgeQueue type satisfies this interface.
type Source interface {
	Amplitudes() []float32
	Initial() uint8
	Edges() []Edge
}

// Config for the Renderer.
type Config struct {
	SampleRate int
	Gain       float64

	// audio is not synthesised when turbo is true
	Turbo bool
}

// Renderer synthesises PCM samples from edge queues.
type Renderer struct {
	eof     int
	clockHz float64

	blep       *blep.BandLimited
	sampleRate int
}

// NewRenderer is the preferred method of initialisation for the Renderer type.
func NewRenderer(spec *specification.Spec) *Renderer {
	return &Renderer{
		eof:     spec.EOF(),
		clockHz: spec.ClockHz(),
	}
}

// SampleTime converts a number of cycles to a number of samples.
func SampleTime(cycles int, sampleRate int, clockHz float64) float64 {
	return float64(cycles) * float64(sampleRate) / clockHz
}

// Reset the synthesiser.
func (r *Renderer) Reset() {
	r.blep = nil
}

// RenderFrame synthesises the samples for a frame that ended at the end cycle.
// The end cycle is normally slightly larger than the length of the frame
// because the final instruction of the frame will have overrun.
//
// Each source is band-limited independently and then mixed. The result is
// scaled by the gain in the Config. The returned slice is owned by the caller.
//
// Nil is returned in turbo mode.
func (r *Renderer) RenderFrame(cfg Config, end int, sources ...Source) []float32 {
	if cfg.Turbo || cfg.SampleRate <= 0 || len(sources) == 0 {
		return nil
	}

	if r.blep == nil || r.blep.Channels() != len(sources) || r.sampleRate != cfg.SampleRate {
		r.blep = blep.NewBandLimited(len(sources))
		r.sampleRate = cfg.SampleRate
		r.blep.SetFrameTime(SampleTime(r.eof, r.sampleRate, r.clockHz), SampleTime(marginCycles, r.sampleRate, r.clockHz))
	}

	for ch, src := range sources {
		amps := src.Amplitudes()
		last := amps[int(src.Initial())%len(amps)]
		for _, e := range src.Edges() {
			next := amps[int(e.Level)%len(amps)]
			if next == last {
				continue
			}
			r.blep.AddStep(ch, SampleTime(e.Time, r.sampleRate, r.clockHz), next-last)
			last = next
		}
	}

	n := r.blep.EndFrame(SampleTime(end, r.sampleRate, r.clockHz))

	out := make([]float32, n)
	gain := float32(cfg.Gain)
	for ch := range sources {
		for i, s := range r.blep.Samples(ch) {
			out[i] += s * gain
		}
	}

	r.blep.NextFrame()

	return out
}

// RendererState is the state of the Renderer that carries over from one frame
// to the next.
type RendererState struct {
	SampleRate int

	// nil if no frame has been rendered since the last reset
	Blep *blep.State
}

// State returns a copy of the Renderer's carry-over.
func (r *Renderer) State() RendererState {
	s := RendererState{SampleRate: r.sampleRate}
	if r.blep != nil {
		b := r.blep.State()
		s.Blep = &b
	}
	return s
}

// Plumb restores the carry-over returned by State().
func (r *Renderer) Plumb(s RendererState) {
	r.sampleRate = s.SampleRate
	if s.Blep == nil {
		r.blep = nil
		return
	}
	r.blep = blep.NewFromState(*s.Blep)
}
