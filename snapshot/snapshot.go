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

// Package snapshot writes and reads the state of the chipset to and from a
// stream. The state is created by ula.Snapshot() and restored with
// ula.Plumb().
//
// The stream starts with a short header identifying the file and the model
// of the machine. The state itself is encoded with encoding/gob.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"io"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	Malformed   = "snapshot: malformed (%v)"
	EncodeError = "snapshot: %v"
)

// header written at the start of every snapshot. the version number is
// incremented whenever the layout of ula.State changes
var magic = []byte("ZXCHIPSNAP")

const version uint8 = 1

// Encode the state to the writer.
func Encode(w io.Writer, s *ula.State) error {
	if s == nil {
		return curated.Errorf(EncodeError, "nil state")
	}

	bw := bufio.NewWriter(w)
	bw.Write(magic)
	bw.WriteByte(version)

	if err := gob.NewEncoder(bw).Encode(s); err != nil {
		return curated.Errorf(EncodeError, err)
	}
	if err := bw.Flush(); err != nil {
		return curated.Errorf(EncodeError, err)
	}
	return nil
}

// Decode a state from the reader. Returns a Malformed error if the data is
// not a snapshot or is damaged. A decoded state should still be checked by
// ula.Plumb() before it is used.
func Decode(r io.Reader) (*ula.State, error) {
	br := bufio.NewReader(r)

	hdr := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, curated.Errorf(Malformed, "short header")
	}
	if !bytes.Equal(hdr[:len(magic)], magic) {
		return nil, curated.Errorf(Malformed, "not a snapshot")
	}
	if hdr[len(magic)] != version {
		return nil, curated.Errorf(Malformed, "unsupported version")
	}

	s := &ula.State{}
	if err := gob.NewDecoder(br).Decode(s); err != nil {
		return nil, curated.Errorf(Malformed, err)
	}
	if s.Memory == nil {
		return nil, curated.Errorf(Malformed, "no memory")
	}

	return s, nil
}

// Save the state to the named file.
func Save(fs afero.Fs, filename string, s *ula.State) error {
	f, err := fs.Create(filename)
	if err != nil {
		return curated.Errorf(EncodeError, err)
	}
	defer f.Close()
	return Encode(f, s)
}

// Load a state from the named file.
func Load(fs afero.Fs, filename string) (*ula.State, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, curated.Errorf(Malformed, err)
	}
	defer f.Close()
	return Decode(f)
}
