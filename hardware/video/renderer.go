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
	"image"
	"image/color"

	"github.com/jetsetilly/zxchip/hardware/specification"
)

// MaxBorder is the largest border size supported by the Renderer.
const MaxBorder = int(BorderFull)

// Frame is the information about a completed frame required by the Renderer.
type Frame struct {
	// the screen bank and how it is organised
	Screen []uint8
	Layout Layout

	// the border colour at the start of the frame and the changes made during
	// the frame, in time order
	Border        uint8
	BorderChanges []BorderChange

	// the frame counter. bit four of the counter is the flash state
	Frames uint64
}

// Flash returns true if flashing cells should be shown inverted.
func (f *Frame) Flash() bool {
	return f.Frames&16 == 16
}

// Renderer draws frames into an image. Pixel lines that have not changed since
// the previous call to Render() are not recomputed.
type Renderer struct {
	spec    *specification.Spec
	colours Colours
	border  BorderSize

	img *image.RGBA

	// state of the previous render. a change in any of these invalidates every
	// line
	valid      bool
	flash      bool
	layout     string
	generation uint64
}

// NewRenderer is the preferred method of initialisation for the Renderer type.
func NewRenderer(spec *specification.Spec, colours Colours, border BorderSize) *Renderer {
	if colours == nil {
		colours = NewPalette(spec.Colors)
	}
	r := &Renderer{
		spec:    spec,
		colours: colours,
	}
	r.SetBorderSize(border)
	return r
}

// SetBorderSize changes the size of the border. The image returned by the next
// call to Render() will be a different size.
func (r *Renderer) SetBorderSize(border BorderSize) {
	if border < 0 {
		border = 0
	} else if border > BorderFull {
		border = BorderFull
	}
	if border != r.border || r.img == nil {
		r.border = border
		b := int(border)
		r.img = image.NewRGBA(image.Rect(0, 0, Width+b*2, PixelLines+b*2))
		r.valid = false
	}
}

// SetColours changes the Colours implementation. Every line will be
// recomputed on the next call to Render().
func (r *Renderer) SetColours(colours Colours) {
	r.colours = colours
	r.valid = false
}

// Colours returns the current Colours implementation.
func (r *Renderer) Colours() Colours {
	return r.colours
}

// Image returns the most recently rendered image. The image is reused by
// subsequent calls to Render().
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Invalidate forces every line to be recomputed on the next call to Render().
func (r *Renderer) Invalidate() {
	r.valid = false
}

// Render the frame. Dirty lines in the cache are recomputed and the cache is
// cleaned.
func (r *Renderer) Render(cache *Cache, frame *Frame) *image.RGBA {
	flash := frame.Flash()
	layout := frame.Layout.String()
	generation := r.colours.Generation()

	all := !r.valid || layout != r.layout || generation != r.generation
	flashToggled := flash != r.flash

	r.valid = true
	r.flash = flash
	r.layout = layout
	r.generation = generation

	r.colours.Begin()

	bw := borderWriter{
		changes: frame.BorderChanges,
		current: frame.Border,
	}

	b := int(r.border)
	cpl := r.spec.Geometry.CyclesPerLine
	inv := (MaxBorder - b) / 2

	// cycle positions of the border chunks relative to the start of a line
	leftStart := r.spec.DisplayHC - MaxBorder/2 + inv
	rightStart := r.spec.DisplayHC + Width/2
	rightEnd := r.spec.DisplayHC + Width/2 + MaxBorder/2 - inv

	for row := 0; row < PixelLines+b*2; row++ {
		line := r.spec.PixelLine - b + row
		lineT := line * cpl
		y := row - b

		if y < 0 || y >= PixelLines {
			r.borderChunks(&bw, row, 0, lineT+leftStart, lineT+rightEnd)
			continue
		}

		r.borderChunks(&bw, row, 0, lineT+leftStart, lineT+r.spec.DisplayHC)

		if all || cache.Dirty[y] || (flashToggled && r.flashing(cache, frame, y)) {
			r.pixelLine(cache, frame, row, y, lineT+r.spec.DisplayHC, flash)
		}

		r.borderChunks(&bw, row, b+Width, lineT+rightStart, lineT+rightEnd)
	}

	cache.Clean()

	return r.img
}

// draw border chunks from cycle start to cycle end (exclusive) at pixel
// position x of the image row.
func (r *Renderer) borderChunks(bw *borderWriter, row int, x int, start int, end int) {
	for t := start; t < end; t += chunkCycles {
		r.colours.Advance(t)
		c := r.colours.Border(bw.at(t))
		r.fill(row, x, chunkPixels, c)
		x += chunkPixels
	}
}

func (r *Renderer) fill(row int, x int, n int, c color.RGBA) {
	i := r.img.PixOffset(x, row)
	p := r.img.Pix[i : i+n*4]
	for j := 0; j < len(p); j += 4 {
		p[j] = c.R
		p[j+1] = c.G
		p[j+2] = c.B
		p[j+3] = c.A
	}
}

// whether any cell on the line is a flashing cell.
func (r *Renderer) flashing(cache *Cache, frame *Frame, y int) bool {
	for col := 0; col < Columns; col++ {
		if cache.Attr(frame.Screen, frame.Layout, y, col)&AttrFlash == AttrFlash {
			return true
		}
	}
	return false
}

// the first cell of the line is output at cycle t.
func (r *Renderer) pixelLine(cache *Cache, frame *Frame, row int, y int, t int, flash bool) {
	i := r.img.PixOffset(int(r.border), row)
	p := r.img.Pix[i : i+Width*4]
	for col := 0; col < Columns; col++ {
		r.colours.Advance(t + col*chunkCycles)
		ink := cache.Pixel(frame.Screen, frame.Layout, y, col)
		attr := cache.Attr(frame.Screen, frame.Layout, y, col)
		fg, bg := r.colours.Attr(attr, flash)
		for bit := 7; bit >= 0; bit-- {
			c := bg
			if ink&(1<<bit) != 0 {
				c = fg
			}
			p[0] = c.R
			p[1] = c.G
			p[2] = c.B
			p[3] = c.A
			p = p[4:]
		}
	}
}
