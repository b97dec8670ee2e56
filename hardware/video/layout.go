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

package video

import "github.com/jetsetilly/zxchip/curated"

// Dimensions of the display area.
const (
	PixelLines = 192
	Columns    = 32
	Width      = Columns * 8
)

// offsets of the attributes in the standard layout.
const attrOffset = 0x1800
const attrSize = 0x0300

// the offset into the second 8K of a bank used by the alternate screen and by
// the hi-colour attributes.
const altOffset = 0x2000

// PixelLineOffset returns the offset into the screen of the start of the
// pixel line.
func PixelLineOffset(y int) int {
	return (y&0x07)<<8 | (y&0x38)<<2 | (y&0xc0)<<5
}

// AttrLineOffset returns the offset, relative to the start of the attributes,
// of the attributes used by the pixel line.
func AttrLineOffset(y int) int {
	return (y >> 3) << 5
}

// the pixel line and column of a standard pixel offset.
func pixelCell(offset int) (int, int) {
	y := (offset>>5)&0xc0 | (offset>>2)&0x38 | (offset>>8)&0x07
	return y, offset & 0x1f
}

// Layout maps display cells to offsets in the screen bank.
type Layout interface {
	String() string

	// the offsets of the pixel and attribute bytes for the cell
	Pixel(y, col int) int
	Attr(y, col int) int

	// the cells affected by a write to the offset. n consecutive pixel lines
	// starting at y0 are affected. attr is true if the offset is attribute
	// data. ok is false if the offset is not display data
	Cells(offset int) (y0 int, n int, col int, attr bool, ok bool)
}

type standard struct {
	base int
}

// Standard is the layout of the original machines.
var Standard Layout = standard{}

// Alternate is the layout of the SCLD alternate screen. It is the same as the
// standard layout but starts 8K into the bank.
var Alternate Layout = standard{base: altOffset}

func (l standard) String() string {
	if l.base == 0 {
		return "standard"
	}
	return "alternate"
}

func (l standard) Pixel(y, col int) int {
	return l.base + PixelLineOffset(y) + col
}

func (l standard) Attr(y, col int) int {
	return l.base + attrOffset + AttrLineOffset(y) + col
}

func (l standard) Cells(offset int) (int, int, int, bool, bool) {
	offset -= l.base
	switch {
	case offset < 0:
		return 0, 0, 0, false, false
	case offset < attrOffset:
		y, col := pixelCell(offset)
		return y, 1, col, false, true
	case offset < attrOffset+attrSize:
		a := offset - attrOffset
		return (a >> 5) << 3, 8, a & 0x1f, true, true
	}
	return 0, 0, 0, false, false
}

type hiColour struct{}

// HiColour is the layout of the SCLD hi-colour mode. Every pixel byte has its
// own attribute byte. The attributes are arranged in the same way as the
// pixels but start 8K into the bank.
var HiColour Layout = hiColour{}

func (hiColour) String() string {
	return "hi-colour"
}

func (hiColour) Pixel(y, col int) int {
	return PixelLineOffset(y) + col
}

func (hiColour) Attr(y, col int) int {
	return altOffset + PixelLineOffset(y) + col
}

func (hiColour) Cells(offset int) (int, int, int, bool, bool) {
	switch {
	case offset < attrOffset:
		y, col := pixelCell(offset)
		return y, 1, col, false, true
	case offset >= altOffset && offset < altOffset+attrOffset:
		y, col := pixelCell(offset - altOffset)
		return y, 1, col, true, true
	}
	return 0, 0, 0, false, false
}

// UnknownLayout is the curated error pattern returned by LookupLayout().
const UnknownLayout = "video: unknown layout (%s)"

// LookupLayout returns the Layout with the name returned by its String()
// function.
func LookupLayout(name string) (Layout, error) {
	for _, l := range []Layout{Standard, Alternate, HiColour} {
		if l.String() == name {
			return l, nil
		}
	}
	return nil, curated.Errorf(UnknownLayout, name)
}
