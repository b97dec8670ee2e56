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

// Amplitude tables for the EAR and MIC output. The level is the value of bits
// 4 and 3 of the ULA port, shifted down by three bits. In other words, bit 1
// is EAR and bit 0 is MIC.
var (
	AmpsEarMic = []float32{0.34 / 3.70, 0.66 / 3.70, 3.56 / 3.70, 3.70 / 3.70}
	AmpsEarOut = []float32{0.34 / 3.70, 0.34 / 3.70, 3.70 / 3.70, 3.70 / 3.70}
)

// AmpsEarIn is the amplitude table for the EAR input.
var AmpsEarIn = []float32{0.34 / 3.70, 3.70 / 3.70}

// Edge is a change of level at a point in time. The time is measured in
// cycles since the start of the frame.
type Edge struct {
	Time  int
	Level uint8
}

// EdgeQueue is the ordered list of changes of level of a single audio source
// during a frame.
type EdgeQueue struct {
	amps []float32

	// the level at the start of the frame
	initial uint8

	edges []Edge
}

// NewEdgeQueue is the preferred method of initialisation for the EdgeQueue
// type. The amplitude table maps levels to output amplitude.
func NewEdgeQueue(amps []float32) *EdgeQueue {
	return &EdgeQueue{
		amps: amps,
	}
}

// Push a new level. The level is only recorded if it differs from the current
// level. Edges are kept in time order: an edge pushed with a time earlier than
// the previous edge is moved to the time of the previous edge.
func (q *EdgeQueue) Push(t int, level uint8) {
	if level == q.Level() {
		return
	}
	if n := len(q.edges); n > 0 && t < q.edges[n-1].Time {
		t = q.edges[n-1].Time
	}
	q.edges = append(q.edges, Edge{Time: t, Level: level})
}

// Level returns the most recent level.
func (q *EdgeQueue) Level() uint8 {
	if n := len(q.edges); n > 0 {
		return q.edges[n-1].Level
	}
	return q.initial
}

// LevelAt returns the level at the time. The level at an edge's time is the
// level of the edge.
func (q *EdgeQueue) LevelAt(t int) uint8 {
	l := q.initial
	for _, e := range q.edges {
		if e.Time > t {
			break
		}
		l = e.Level
	}
	return l
}

// Initial returns the level at the start of the frame.
func (q *EdgeQueue) Initial() uint8 {
	return q.initial
}

// Edges returns the edges pushed during the frame. The returned slice must not
// be modified.
func (q *EdgeQueue) Edges() []Edge {
	return q.edges
}

// Amplitudes returns the amplitude table for the queue.
func (q *EdgeQueue) Amplitudes() []float32 {
	return q.amps
}

// SetAmplitudes changes the amplitude table for the queue.
func (q *EdgeQueue) SetAmplitudes(amps []float32) {
	q.amps = amps
}

// NextFrame clears the queue. The current level becomes the initial level of
// the next frame.
func (q *EdgeQueue) NextFrame() {
	q.initial = q.Level()
	q.edges = q.edges[:0]
}

// Reset the queue to level zero.
func (q *EdgeQueue) Reset() {
	q.initial = 0
	q.edges = q.edges[:0]
}

// Snapshot returns a deep copy of the queue.
func (q *EdgeQueue) Snapshot() *EdgeQueue {
	n := *q
	n.edges = make([]Edge, len(q.edges))
	copy(n.edges, q.edges)
	return &n
}

// QueueState is the exported state of an EdgeQueue.
type QueueState struct {
	Initial uint8
	Edges   []Edge
}

// State returns a copy of the queue's state.
func (q *EdgeQueue) State() QueueState {
	s := QueueState{Initial: q.initial, Edges: make([]Edge, len(q.edges))}
	copy(s.Edges, q.edges)
	return s
}

// Plumb restores the queue's state.
func (q *EdgeQueue) Plumb(s QueueState) {
	q.initial = s.Initial
	q.edges = append(q.edges[:0], s.Edges...)
}
