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

// Package otoaudio plays the audio of a hostaudio.Carousel with the oto
// library. The carousel is read directly by the oto player.
package otoaudio

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hostaudio"
	"github.com/jetsetilly/zxchip/logger"
)

// DeviceError is the curated error pattern for errors from the audio device.
const DeviceError = "otoaudio: %v"

// there can only be one oto context per process
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxRate int
	ctxErr  error
)

// Audio plays the contents of a carousel.
type Audio struct {
	player *oto.Player
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// sample rate cannot be changed once the first Audio instance has been
// created.
func NewAudio(carousel *hostaudio.Carousel, sampleRate int) (*Audio, error) {
	ctxOnce.Do(func() {
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		})
		if ctxErr == nil {
			<-ready
			ctxRate = sampleRate
		}
	})
	if ctxErr != nil {
		return nil, curated.Errorf(DeviceError, ctxErr)
	}
	if ctxRate != sampleRate {
		return nil, curated.Errorf(DeviceError, "sample rate cannot be changed")
	}

	aud := &Audio{
		player: ctx.NewPlayer(carousel),
	}
	aud.player.Play()

	logger.Logf(logger.Allow, "otoaudio", "frequency: %d samples/sec", sampleRate)

	return aud, nil
}

// Close stops playback. The Audio instance should not be used after this
// call.
func (aud *Audio) Close() error {
	if err := aud.player.Close(); err != nil {
		return curated.Errorf(DeviceError, err)
	}
	return nil
}
