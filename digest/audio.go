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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
)

// Audio hashes frames of PCM data.
type Audio struct {
	digest  [sha1.Size]byte
	samples int

	buffer []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (dig *Audio) String() string {
	return fmt.Sprintf("audio %d samples: %s", dig.samples, dig.Hash())
}

// Hash implements the digest.Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Audio) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.samples = 0
}

// SetAudio adds a frame of samples to the digest. An empty frame does not
// change the digest.
func (dig *Audio) SetAudio(pcm []float32) {
	if len(pcm) == 0 {
		return
	}

	n := len(dig.digest) + len(pcm)*4
	if cap(dig.buffer) < n {
		dig.buffer = make([]byte, n)
	}
	dig.buffer = dig.buffer[:n]

	copy(dig.buffer, dig.digest[:])
	for i, s := range pcm {
		binary.LittleEndian.PutUint32(dig.buffer[len(dig.digest)+i*4:], math.Float32bits(s))
	}

	dig.digest = sha1.Sum(dig.buffer)
	dig.samples += len(pcm)
}
