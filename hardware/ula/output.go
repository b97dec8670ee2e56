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

package ula

import (
	"image"

	"github.com/jetsetilly/zxchip/hardware/audio"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// Render the most recent frame. Should be called after RunFrame() has
// returned without error. The returned image is reused by the next call to
// Render().
func (ula *ULA) Render() *image.RGBA {
	return ula.renderer.Render(&ula.cache, &video.Frame{
		Screen:        ula.mem.ScreenData(),
		Layout:        ula.layout,
		Border:        ula.borderStart,
		BorderChanges: ula.borderChanges,
		Frames:        ula.frames,
	})
}

// AudioSources returns the EAR/MIC output followed by the audio of every bus
// device that implements bus.AudioSource.
func (ula *ULA) AudioSources() []audio.Source {
	src := []audio.Source{ula.earmic}
	for _, dev := range ula.chain.Devices() {
		if a, ok := dev.(bus.AudioSource); ok {
			src = append(src, a.AudioEdges())
		}
	}
	return src
}

// RenderAudio synthesises the audio for the most recent frame. Should be
// called after RunFrame() has returned without error. Returns nil in turbo
// mode.
func (ula *ULA) RenderAudio(cfg audio.Config) []float32 {
	return ula.audio.RenderFrame(cfg, ula.end, ula.AudioSources()...)
}

// AudioConfig returns an audio.Config created from the current preferences.
func (ula *ULA) AudioConfig() audio.Config {
	return audio.Config{
		SampleRate: ula.env.Prefs.SampleRate.Get().(int),
		Gain:       ula.env.Prefs.AudioGain.Get().(float64),
		Turbo:      ula.env.Prefs.Turbo.Get().(bool),
	}
}

// Invalidate forces the next call to Render() to redraw the entire frame.
// Should be called after screen memory has been changed by the host.
func (ula *ULA) Invalidate() {
	ula.cache.Invalidate()
	ula.renderer.Invalidate()
}

// FrameSize returns the size of the image returned by Render().
func (ula *ULA) FrameSize() (int, int) {
	b := ula.renderer.Image().Bounds()
	return b.Dx(), b.Dy()
}
