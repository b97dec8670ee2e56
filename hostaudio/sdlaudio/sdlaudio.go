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

// Package sdlaudio plays the audio of a hostaudio.Carousel through SDL. SDL
// must be initialised by the caller.
package sdlaudio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hostaudio"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// DeviceError is the curated error pattern for errors from the audio device.
const DeviceError = "sdlaudio: %v"

// the number of samples in the device buffer. this is also the number of
// samples moved from the carousel on every tick
const bufferLength = 512

// Audio moves samples from the carousel to the SDL audio queue.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	carousel *hostaudio.Carousel

	samples []float32
	data    []byte

	quit chan bool
	wg   sync.WaitGroup
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(carousel *hostaudio.Carousel, sampleRate int) (*Audio, error) {
	aud := &Audio{
		carousel: carousel,
		samples:  make([]float32, bufferLength),
		data:     make([]byte, bufferLength*4),
		quit:     make(chan bool),
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, curated.Errorf(DeviceError, err)
	}

	logger.Logf(logger.Allow, "sdlaudio", "frequency: %d samples/sec", aud.spec.Freq)
	logger.Logf(logger.Allow, "sdlaudio", "buffer size: %d samples", aud.spec.Samples)

	aud.wg.Add(1)
	go aud.service()

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// keep at least two buffers of audio queued on the device
func (aud *Audio) service() {
	defer aud.wg.Done()

	period := time.Duration(float64(time.Second) * bufferLength / float64(aud.spec.Freq))
	tck := time.NewTicker(period)
	defer tck.Stop()

	for {
		select {
		case <-aud.quit:
			return
		case <-tck.C:
			for sdl.GetQueuedAudioSize(aud.id) < uint32(len(aud.data)*2) {
				aud.carousel.Pull(aud.samples)
				for i, s := range aud.samples {
					binary.LittleEndian.PutUint32(aud.data[i*4:], math.Float32bits(s))
				}
				if err := sdl.QueueAudio(aud.id, aud.data); err != nil {
					logger.Log(logger.Allow, "sdlaudio", err)
					break // for loop
				}
			}
		}
	}
}

// Close the audio device. The Audio instance should not be used after this
// call.
func (aud *Audio) Close() {
	close(aud.quit)
	aud.wg.Wait()
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
}
