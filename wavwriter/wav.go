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

// Package wavwriter records the synthesised audio of an emulation to a WAV
// file. Frames of audio are collected by SetAudio() and the file is written
// when End() is called.
package wavwriter

import (
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	WavWriterError = "wavwriter: %v"
	NoSampleRate   = "wavwriter: sample rate must be greater than zero"
)

const bitDepth = 16

// WavWriter implements the RenderAudio() stage of the frame loop. Audio is
// written as 16bit mono.
type WavWriter struct {
	fs         afero.Fs
	filename   string
	sampleRate int
	buffer     []int
	clipped    int
}

// New is the preferred method of initialisation for the WavWriter type. If fs
// is nil then the OS filesystem is used.
func New(fs afero.Fs, filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf(NoSampleRate)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &WavWriter{
		fs:         fs,
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0, sampleRate),
	}, nil
}

// Filename returns the name of the file that will be written by End().
func (aw *WavWriter) Filename() string {
	return aw.filename
}

// Samples returns the number of samples collected so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// SetAudio appends a frame of audio. Sample values are expected to be in the
// range -1.0 to 1.0 and values outside of that range are clipped.
func (aw *WavWriter) SetAudio(pcm []float32) error {
	const max = 1<<(bitDepth-1) - 1
	for _, s := range pcm {
		if s > 1.0 {
			s = 1.0
			aw.clipped++
		} else if s < -1.0 {
			s = -1.0
			aw.clipped++
		}
		aw.buffer = append(aw.buffer, int(s*max))
	}
	return nil
}

// End writes the collected audio to disk.
func (aw *WavWriter) End() error {
	f, err := aw.fs.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: aw.sampleRate},
		SourceBitDepth: bitDepth,
		Data:           aw.buffer,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	if aw.clipped > 0 {
		logger.Logf(logger.Allow, "wavwriter", "%d samples clipped", aw.clipped)
	}
	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
