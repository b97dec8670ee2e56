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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/zxchip/hardware/audio"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/logger"
)

// Player is a bus device that plays a list of pulses into the EAR input.
type Player struct {
	perm   logger.Permission
	name   string
	pulses []uint32

	playing bool
	level   bool

	// index of the current pulse and the number of cycles remaining in it
	idx       int
	remaining int64

	// the local time the player has advanced to. measured in frame cycles
	last int64

	edges *audio.EdgeQueue
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The player is stopped and rewound.
func NewPlayer(perm logger.Permission, name string, pulses []uint32) *Player {
	pl := &Player{
		perm:   perm,
		name:   name,
		pulses: pulses,
		edges:  audio.NewEdgeQueue(audio.AmpsEarIn),
	}
	pl.Rewind()
	return pl
}

// Name implements the bus.Device interface.
func (pl *Player) Name() string {
	return pl.name
}

func (pl *Player) String() string {
	state := "stopped"
	if pl.playing {
		state = "playing"
	}
	return fmt.Sprintf("%s: %s pulse %d of %d", pl.name, state, pl.idx, len(pl.pulses))
}

// Clock implements the bus.Device interface.
func (pl *Player) Clock() bus.Representation {
	return bus.FrameCycles
}

// Reset implements the bus.Device interface. The player stops and rewinds.
func (pl *Player) Reset() {
	pl.Stop()
	pl.Rewind()
	pl.last = 0
	pl.edges.Reset()
}

// Play starts the tape from the current position.
func (pl *Player) Play() {
	if pl.idx >= len(pl.pulses) {
		return
	}
	pl.playing = true
	logger.Logf(pl.perm, logTag, "%s: playing from pulse %d", pl.name, pl.idx)
}

// Stop the tape. The position is kept.
func (pl *Player) Stop() {
	pl.playing = false
}

// Rewind the tape to the first pulse. The level is low.
func (pl *Player) Rewind() {
	pl.idx = 0
	pl.remaining = 0
	if len(pl.pulses) > 0 {
		pl.remaining = int64(pl.pulses[0])
	}
	pl.level = false
}

// Playing returns true if the tape is playing.
func (pl *Player) Playing() bool {
	return pl.playing
}

// Position returns the index of the current pulse and the number of pulses.
func (pl *Player) Position() (int, int) {
	return pl.idx, len(pl.pulses)
}

// the level of the tape as an edge queue level.
func (pl *Player) levelValue() uint8 {
	if pl.level {
		return 1
	}
	return 0
}

// AdvanceTo implements the bus.Device interface.
func (pl *Player) AdvanceTo(local int64) {
	if !pl.playing {
		if local > pl.last {
			pl.last = local
		}
		return
	}

	for pl.last < local && pl.playing {
		step := local - pl.last
		if pl.remaining < step {
			step = pl.remaining
		}
		pl.last += step
		pl.remaining -= step

		if pl.remaining > 0 {
			continue
		}

		pl.level = !pl.level
		pl.edges.Push(int(pl.last), pl.levelValue())

		pl.idx++
		if pl.idx >= len(pl.pulses) {
			pl.playing = false
			logger.Logf(pl.perm, logTag, "%s: end of tape", pl.name)
			break
		}
		pl.remaining = int64(pl.pulses[pl.idx])
	}

	if local > pl.last {
		pl.last = local
	}
}

// EarIn implements the bus.EarSource interface.
func (pl *Player) EarIn(local int64) bool {
	pl.AdvanceTo(local)
	return pl.level
}

// AudioEdges implements the bus.AudioSource interface.
func (pl *Player) AudioEdges() *audio.EdgeQueue {
	return pl.edges
}

// ReadIO implements the bus.Device interface. No ports are claimed.
func (pl *Player) ReadIO(_ uint16, _ int64) (uint8, bool, int) {
	return 0, false, 0
}

// WriteIO implements the bus.Device interface.
func (pl *Player) WriteIO(_ uint16, data uint8, _ int64) (uint8, int) {
	return data, 0
}

// NextFrame implements the bus.Device interface. The unfinished pulse
// continues into the next frame.
func (pl *Player) NextFrame(eof int64) {
	pl.AdvanceTo(eof)
	pl.last -= eof
}

// the serialised form of the player. the pulses are not included. the state
// is followed by the edges of the current frame.
type state struct {
	Pulses    uint32
	Idx       uint32
	Remaining int64
	Last      int64
	Playing   bool
	Level     bool

	EdgesInitial uint8
	NumEdges     uint32
}

// the serialised form of an audio.Edge.
type edge struct {
	Time  int64
	Level uint8
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (pl *Player) MarshalBinary() ([]byte, error) {
	q := pl.edges.State()

	var b bytes.Buffer
	err := binary.Write(&b, binary.LittleEndian, state{
		Pulses:       uint32(len(pl.pulses)),
		Idx:          uint32(pl.idx),
		Remaining:    pl.remaining,
		Last:         pl.last,
		Playing:      pl.playing,
		Level:        pl.level,
		EdgesInitial: q.Initial,
		NumEdges:     uint32(len(q.Edges)),
	})
	if err != nil {
		return nil, err
	}

	for _, e := range q.Edges {
		if err := binary.Write(&b, binary.LittleEndian, edge{Time: int64(e.Time), Level: e.Level}); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// state must have been created by a player with the same tape.
func (pl *Player) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var s state
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return err
	}
	if int(s.Pulses) != len(pl.pulses) {
		return fmt.Errorf("%s: state is for a different tape", pl.name)
	}
	if int(s.Idx) > len(pl.pulses) {
		return fmt.Errorf("%s: pulse %d is past the end of the tape", pl.name, s.Idx)
	}

	q := audio.QueueState{Initial: s.EdgesInitial}
	for i := uint32(0); i < s.NumEdges; i++ {
		var e edge
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("%s: edge %d: %w", pl.name, i, err)
		}
		q.Edges = append(q.Edges, audio.Edge{Time: int(e.Time), Level: e.Level})
	}

	pl.idx = int(s.Idx)
	pl.remaining = s.Remaining
	pl.last = s.Last
	pl.playing = s.Playing
	pl.level = s.Level
	pl.edges.Plumb(q)
	return nil
}
