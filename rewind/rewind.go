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

package rewind

import (
	"fmt"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/ula"
)

// sentinal error patterns.
const (
	FrameNotAvailable = "rewind: frame %d is not available"
	NoEntries         = "rewind: no entries"
)

// DefaultEntries is the number of entries kept when NewRewind() is called with
// a size of zero.
const DefaultEntries = 100

type entry struct {
	// the position of the state in the emulation. used to order entries
	ticks uint64
	frame uint64

	state *hardware.State
}

func (e entry) String() string {
	return fmt.Sprintf("%d", e.frame)
}

// Rewind contains a history of machine states.
type Rewind struct {
	m *hardware.Machine

	entries []entry
	size    int
	freq    int
}

// NewRewind is the preferred method of initialisation for the Rewind type.
func NewRewind(m *hardware.Machine, size int, freq int) *Rewind {
	if size <= 0 {
		size = DefaultEntries
	}
	if freq <= 0 {
		freq = 1
	}
	return &Rewind{
		m:    m,
		size: size,
		freq: freq,
	}
}

func (r *Rewind) String() string {
	if len(r.entries) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%s to %s", r.entries[0], r.entries[len(r.entries)-1])
}

// Reset removes all entries and then records the current state of the
// machine. It should be called whenever the machine is reset or new media is
// attached.
func (r *Rewind) Reset() error {
	r.entries = r.entries[:0]
	return r.append()
}

// Record the state of the machine if the frequency check passes. Should be
// called at the end of every frame.
func (r *Rewind) Record() error {
	if r.m.Frame()%uint64(r.freq) != 0 {
		r.truncate(r.m.ULA.Ticks())
		return nil
	}
	return r.append()
}

// remove entries at or after the specified point.
func (r *Rewind) truncate(ticks uint64) {
	for len(r.entries) > 0 && r.entries[len(r.entries)-1].ticks >= ticks {
		r.entries = r.entries[:len(r.entries)-1]
	}
}

func (r *Rewind) append() error {
	s, err := r.m.Snapshot()
	if err != nil {
		return err
	}

	e := entry{
		ticks: r.m.ULA.Ticks(),
		frame: r.m.Frame(),
		state: s,
	}

	r.truncate(e.ticks)
	r.entries = append(r.entries, e)
	if len(r.entries) > r.size {
		r.entries = r.entries[len(r.entries)-r.size:]
	}

	return nil
}

// Frames summarises the current state of the rewind system.
type Frames struct {
	Start   uint64
	End     uint64
	Current uint64
}

// GetFrames returns the range of frames that can be returned to and the
// current frame of the machine.
func (r *Rewind) GetFrames() Frames {
	f := Frames{Current: r.m.Frame()}
	if len(r.entries) > 0 {
		f.Start = r.entries[0].frame
		f.End = r.entries[len(r.entries)-1].frame
	}
	return f
}

// GotoFrame returns the machine to the end of the specified frame. The frame
// must not be later than the most recent entry or the current frame.
func (r *Rewind) GotoFrame(frame uint64) error {
	idx := -1
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].frame <= frame {
			idx = i
			break // for loop
		}
	}
	if idx == -1 {
		return curated.Errorf(FrameNotAvailable, frame)
	}

	// frames after the last entry can be reached by running forward, but only
	// as far as the emulation has already been
	limit := r.entries[len(r.entries)-1].frame
	if cur := r.m.Frame(); cur > limit {
		limit = cur
	}
	if frame > limit {
		return curated.Errorf(FrameNotAvailable, frame)
	}

	if err := r.m.Plumb(r.entries[idx].state); err != nil {
		return err
	}

	for r.m.Frame() < frame || r.m.ULA.Status() != ula.FrameComplete {
		if err := r.m.ULA.RunFrame(r.m.CPU); err != nil {
			return err
		}
	}

	return nil
}

// GotoLast returns the machine to the most recent entry.
func (r *Rewind) GotoLast() error {
	if len(r.entries) == 0 {
		return curated.Errorf(NoEntries)
	}
	return r.m.Plumb(r.entries[len(r.entries)-1].state)
}
