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
	"fmt"
	"image"
)

// Video hashes rendered frames.
type Video struct {
	digest [sha1.Size]byte
	frames int

	// the previous digest followed by the pixels of the frame
	buffer []byte
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return fmt.Sprintf("video %d frames: %s", dig.frames, dig.Hash())
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frames = 0
}

// Frame adds the image to the digest. The alpha channel is included.
func (dig *Video) Frame(img *image.RGBA) {
	b := img.Bounds()
	n := len(dig.digest) + b.Dx()*b.Dy()*4
	if cap(dig.buffer) < n {
		dig.buffer = make([]byte, 0, n)
	}
	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)

	// the image may be a sub-image so the pixels are copied one line at a
	// time
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		dig.buffer = append(dig.buffer, img.Pix[i:i+b.Dx()*4]...)
	}

	dig.digest = sha1.Sum(dig.buffer)
	dig.frames++
}
