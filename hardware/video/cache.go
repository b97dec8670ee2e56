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

import (
	"github.com/jetsetilly/zxchip/hardware/specification"
)

// Beam is the position of the display fetch. Y is the pixel line (which may be
// outside the range of the display) and H is the number of cycles since the
// start of the fetch for that line.
type Beam struct {
	Y int
	H int
}

// BeamAt returns the position of the display fetch at cycle t of the frame.
func BeamAt(spec *specification.Spec, t int) Beam {
	return BeamFrom(spec, t, spec.FetchHC)
}

// BeamFrom is like BeamAt() but the H value is relative to the hc value
// rather than to the start of the fetch.
func BeamFrom(spec *specification.Spec, t int, hc int) Beam {
	cpl := spec.Geometry.CyclesPerLine
	t -= spec.PixelLine*cpl + hc
	y := t / cpl
	if t < 0 && t%cpl != 0 {
		y--
	}
	return Beam{Y: y, H: t - y*cpl}
}

// the cycle, relative to the start of the fetch for the line, at which the
// pixel and attribute bytes for a column are fetched. the ULA fetches two
// columns in every eight cycles.
func inkHTS(col int) int {
	return (col>>1)*8 + (col&1)*2 + 1
}

func attrHTS(col int) int {
	return inkHTS(col) + 1
}

// Fetched returns true if the display byte of the cell has already been
// fetched by the time the beam is at the position.
func (b Beam) Fetched(y, col int, attr bool) bool {
	if y < b.Y {
		return true
	}
	if y > b.Y {
		return false
	}
	if attr {
		return b.H > attrHTS(col)
	}
	return b.H > inkHTS(col)
}

// Cache records display bytes that must not be read from memory when the
// frame is rendered. The Cache type is a value type and copying it creates an
// independent copy.
type Cache struct {
	Pixels    [PixelLines][Columns]uint8
	PixelMask [PixelLines]uint32
	Attrs     [PixelLines][Columns]uint8
	AttrMask  [PixelLines]uint32

	// lines that have changed since the last call to Clean()
	Dirty [PixelLines]bool
}

func (c *Cache) frozenPixel(y, col int) bool {
	return c.PixelMask[y]&(1<<col) != 0
}

func (c *Cache) frozenAttr(y, col int) bool {
	return c.AttrMask[y]&(1<<col) != 0
}

func (c *Cache) freezePixel(y, col int, v uint8) {
	if !c.frozenPixel(y, col) {
		c.Pixels[y][col] = v
		c.PixelMask[y] |= 1 << col
	}
	c.Dirty[y] = true
}

func (c *Cache) freezeAttr(y, col int, v uint8) {
	if !c.frozenAttr(y, col) {
		c.Attrs[y][col] = v
		c.AttrMask[y] |= 1 << col
	}
	c.Dirty[y] = true
}

// Write should be called before the byte at offset in the screen is changed.
// The screen slice must still contain the old value. Cells that have already
// been fetched keep the old value for the rest of the frame.
func (c *Cache) Write(screen []uint8, layout Layout, offset int, beam Beam) {
	y0, n, col, attr, ok := layout.Cells(offset)
	if !ok {
		return
	}
	old := screen[offset]
	for y := y0; y < y0+n; y++ {
		if beam.Fetched(y, col, attr) {
			if attr {
				c.freezeAttr(y, col, old)
			} else {
				c.freezePixel(y, col, old)
			}
		} else {
			c.Dirty[y] = true
		}
	}
}

// Freeze should be called before the screen or the layout is switched. Every
// cell fetched from the old screen keeps its value for the rest of the frame.
func (c *Cache) Freeze(screen []uint8, layout Layout, beam Beam) {
	for y := 0; y < PixelLines; y++ {
		if y > beam.Y {
			c.Dirty[y] = true
			continue
		}
		for col := 0; col < Columns; col++ {
			if beam.Fetched(y, col, false) {
				c.freezePixel(y, col, screen[layout.Pixel(y, col)])
			}
			if beam.Fetched(y, col, true) {
				c.freezeAttr(y, col, screen[layout.Attr(y, col)])
			}
		}
		c.Dirty[y] = true
	}
}

// Snow replaces the display bytes fetched at the beam position with the bytes
// addressed by the refresh register. The low byte of the display address is
// replaced by r.
//
// Should only be called when the refresh address is in contended memory
// during an M1 cycle. The beam position must be relative to the point where
// the interference occurs rather than the point of the fetch.
func (c *Cache) Snow(screen []uint8, layout Layout, beam Beam, r uint8) {
	if beam.Y < 0 || beam.Y >= PixelLines || beam.H < 0 || beam.H >= 124 {
		return
	}

	var offs int
	switch beam.H & 7 {
	case 0, 1:
		offs = 0
	case 2, 3:
		offs = 1
	default:
		return
	}
	col := ((beam.H >> 2) &^ 1) | offs

	y := beam.Y
	pix := screen[(layout.Pixel(y, 0)&0xff00)|int(r)]
	attr := screen[(layout.Attr(y, 0)&0xff00)|int(r)]

	c.Pixels[y][col] = pix
	c.PixelMask[y] |= 1 << col
	c.Attrs[y][col] = attr
	c.AttrMask[y] |= 1 << col
	c.Dirty[y] = true
}

// Pixel returns the pixel byte for the cell as it should be displayed.
func (c *Cache) Pixel(screen []uint8, layout Layout, y, col int) uint8 {
	if c.frozenPixel(y, col) {
		return c.Pixels[y][col]
	}
	return screen[layout.Pixel(y, col)]
}

// Attr returns the attribute byte for the cell as it should be displayed.
func (c *Cache) Attr(screen []uint8, layout Layout, y, col int) uint8 {
	if c.frozenAttr(y, col) {
		return c.Attrs[y][col]
	}
	return screen[layout.Attr(y, col)]
}

// Frozen returns true if any cell on the line is being displayed from the
// cache.
func (c *Cache) Frozen(y int) bool {
	return c.PixelMask[y] != 0 || c.AttrMask[y] != 0
}

// NextFrame forgets all frozen cells. Lines that had frozen cells are marked
// as dirty because they will now show the contents of memory.
func (c *Cache) NextFrame() {
	for y := 0; y < PixelLines; y++ {
		if c.Frozen(y) {
			c.Dirty[y] = true
		}
		c.PixelMask[y] = 0
		c.AttrMask[y] = 0
	}
}

// Invalidate marks every line as dirty.
func (c *Cache) Invalidate() {
	for y := range c.Dirty {
		c.Dirty[y] = true
	}
}

// Clean marks every line as clean. Called by the Renderer once the dirty lines
// have been recomputed.
func (c *Cache) Clean() {
	for y := range c.Dirty {
		c.Dirty[y] = false
	}
}

// Reset the cache to its initial state. Every line is dirty.
func (c *Cache) Reset() {
	*c = Cache{}
	c.Invalidate()
}
