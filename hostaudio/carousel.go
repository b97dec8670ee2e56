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

package hostaudio

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
)

// DefaultDepth is the number of frames held by a Carousel created with a
// depth of zero.
const DefaultDepth = 3

// Carousel is a bounded hand-off of audio frames from the emulation to the
// host. Queue() and Pull() can be called from different goroutines but
// neither should be called from more than one goroutine at a time.
type Carousel struct {
	frames chan []float32

	// the frame being drained by Pull(). only touched by the reading
	// goroutine
	current []float32
	pos     int

	// the most recent sample. repeated on underrun so that the waveform
	// doesn't jump to zero
	last float32

	queued    atomic.Int64
	skipped   atomic.Int64
	underruns atomic.Int64
}

// NewCarousel is the preferred method of initialisation for the Carousel
// type.
func NewCarousel(depth int) *Carousel {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Carousel{
		frames: make(chan []float32, depth),
	}
}

func (c *Carousel) String() string {
	return fmt.Sprintf("%d/%d frames queued", len(c.frames), cap(c.frames))
}

// Queue a frame of audio. The Carousel takes ownership of the slice. If the
// Carousel is full then Queue() waits for space or for the context to be
// cancelled. In turbo mode the frame is dropped instead and false is returned.
//
// An empty frame is ignored.
func (c *Carousel) Queue(ctx context.Context, pcm []float32, turbo bool) (bool, error) {
	if len(pcm) == 0 {
		return true, nil
	}

	select {
	case c.frames <- pcm:
		c.queued.Add(1)
		return true, nil
	default:
	}

	if turbo {
		c.skipped.Add(1)
		return false, nil
	}

	select {
	case c.frames <- pcm:
		c.queued.Add(1)
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pull fills out with samples. Never blocks. If there are not enough queued
// samples then the remainder of out is filled by repeating the last sample.
// Returns the number of samples that came from queued frames.
func (c *Carousel) Pull(out []float32) int {
	n := 0
	for n < len(out) {
		if c.pos >= len(c.current) {
			select {
			case f := <-c.frames:
				c.current = f
				c.pos = 0
			default:
				c.underruns.Add(1)
				for i := n; i < len(out); i++ {
					out[i] = c.last
				}
				return n
			}
		}

		m := copy(out[n:], c.current[c.pos:])
		c.pos += m
		n += m
		c.last = out[n-1]
	}
	return n
}

// Read implements the io.Reader interface. Samples are written as 32bit
// little-endian floating point values. Never blocks and never returns an
// error.
func (c *Carousel) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/4)
	c.Pull(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return len(samples) * 4, nil
}

// Buffered returns the number of whole frames waiting to be pulled.
func (c *Carousel) Buffered() int {
	return len(c.frames)
}

// Stats returns the number of frames queued, the number of frames skipped in
// turbo mode and the number of times Pull() ran out of samples.
func (c *Carousel) Stats() (queued int64, skipped int64, underruns int64) {
	return c.queued.Load(), c.skipped.Load(), c.underruns.Load()
}
