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

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/spf13/afero"
)

// Sentinal error patterns.
const (
	UnsupportedFormat = "tape: unsupported format (%s)"
	DecodeError       = "tape: %v"
)

const logTag = "tape"

// PCM is a mono recording. Stereo recordings are reduced to the left channel.
type PCM struct {
	SampleRate float64
	Data       []float32
}

// Duration of the recording in seconds.
func (p PCM) Duration() float64 {
	if p.SampleRate == 0 {
		return 0
	}
	return float64(len(p.Data)) / p.SampleRate
}

// LoadPCM reads the recording from the file. The format is decided by the
// file extension.
func LoadPCM(perm logger.Permission, fs afero.Fs, filename string) (PCM, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return PCM{}, curated.Errorf(DecodeError, err)
	}
	defer f.Close()
	return DecodePCM(perm, f, filepath.Ext(filename))
}

// DecodePCM decodes the recording from the reader. The ext argument is the
// file extension (".wav" or ".mp3") and decides the format.
func DecodePCM(perm logger.Permission, r io.ReadSeeker, ext string) (PCM, error) {
	var p PCM

	switch strings.ToLower(ext) {
	case ".wav":
		dec := wav.NewDecoder(r)
		if dec == nil || !dec.IsValidFile() {
			return p, curated.Errorf(DecodeError, "not a valid wav file")
		}

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf(DecodeError, fmt.Errorf("wav: %w", err))
		}
		floatBuf := buf.AsFloat32Buffer()

		chans := int(dec.NumChans)
		if chans < 1 {
			chans = 1
		}

		// first channel only
		p.Data = make([]float32, 0, len(floatBuf.Data)/chans)
		for i := 0; i < len(floatBuf.Data); i += chans {
			p.Data = append(p.Data, floatBuf.Data[i])
		}
		p.SampleRate = float64(dec.SampleRate)

		logger.Log(perm, logTag, "loading from wav file")

	case ".mp3":
		dec, err := mp3.NewDecoder(r)
		if err != nil {
			return p, curated.Errorf(DecodeError, fmt.Errorf("mp3: %w", err))
		}

		// the stream is always 16 bit little endian stereo. four bytes per
		// sample and the left channel is the first two bytes
		chunk := make([]byte, 4096)
		for {
			n, err := io.ReadFull(dec, chunk)
			for i := 0; i+1 < n; i += 4 {
				p.Data = append(p.Data, float32(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				return p, curated.Errorf(DecodeError, fmt.Errorf("mp3: %w", err))
			}
		}
		p.SampleRate = float64(dec.SampleRate())

		logger.Log(perm, logTag, "loading from mp3 file")

	default:
		return p, curated.Errorf(UnsupportedFormat, ext)
	}

	if p.SampleRate <= 0 {
		return p, curated.Errorf(DecodeError, "sample rate is zero")
	}

	logger.Logf(perm, logTag, "sample rate: %0.2fHz", p.SampleRate)
	logger.Logf(perm, logTag, "total time: %.02fs", p.Duration())

	return p, nil
}
