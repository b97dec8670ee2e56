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

package test

import (
	"fmt"
	"strings"
)

// RingWriter is an implementation of io.Writer that keeps the most recent
// lines of output. Useful for capturing the log echo of a long emulation run
// where only the final entries are of interest.
//
// A line is not kept until its newline has been written.
type RingWriter struct {
	lines   []string
	next    int
	full    bool
	partial strings.Builder
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type. The number of lines kept must be at least one.
func NewRingWriter(lines int) (*RingWriter, error) {
	if lines <= 0 {
		return nil, fmt.Errorf("ring writer: invalid number of lines (%d)", lines)
	}
	return &RingWriter{
		lines: make([]string, lines),
	}, nil
}

// Lines returns the kept lines, oldest first. The newline is not included.
func (r *RingWriter) Lines() []string {
	if !r.full {
		return append([]string{}, r.lines[:r.next]...)
	}
	return append(append([]string{}, r.lines[r.next:]...), r.lines[:r.next]...)
}

// Last returns the most recent complete line or the empty string.
func (r *RingWriter) Last() string {
	if r.next == 0 {
		if !r.full {
			return ""
		}
		return r.lines[len(r.lines)-1]
	}
	return r.lines[r.next-1]
}

func (r *RingWriter) String() string {
	var s strings.Builder
	for _, l := range r.Lines() {
		s.WriteString(l)
		s.WriteByte('\n')
	}
	return s.String()
}

// Reset empties the ring and discards any incomplete line.
func (r *RingWriter) Reset() {
	r.next = 0
	r.full = false
	r.partial.Reset()
}

// Write implements io.Writer
func (r *RingWriter) Write(p []byte) (int, error) {
	s := string(p)
	for {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			r.partial.WriteString(s)
			break
		}
		r.partial.WriteString(s[:i])
		r.push(r.partial.String())
		r.partial.Reset()
		s = s[i+1:]
	}
	return len(p), nil
}

func (r *RingWriter) push(l string) {
	r.lines[r.next] = l
	r.next++
	if r.next >= len(r.lines) {
		r.next = 0
		r.full = true
	}
}
