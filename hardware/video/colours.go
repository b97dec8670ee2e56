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

import "image/color"

// Attribute bits.
const (
	AttrInk    = 0x07
	AttrPaper  = 0x38
	AttrBright = 0x40
	AttrFlash  = 0x80
)

// Colours turns attribute and border values into RGBA colours.
type Colours interface {
	String() string

	// Begin is called before a frame is rendered and Advance() is called
	// before each group of eight pixels is rendered. The t value is the cycle,
	// relative to the start of the frame, at which the group is output. Groups
	// are rendered in time order but groups on lines that do not need to be
	// redrawn are skipped. Implementations that change colours during a frame
	// use these calls to present the colours that were in effect at the time
	Begin()
	Advance(t int)

	// the ink and paper colours for the attribute. the flash argument is true
	// when the flash state is inverted
	Attr(attr uint8, flash bool) (ink color.RGBA, paper color.RGBA)

	// the colour for the border value (0 to 7)
	Border(b uint8) color.RGBA

	// Generation changes whenever the output of Attr() or Border() has changed
	// for the same arguments
	Generation() uint64
}

// Palette is the standard Colours implementation. It uses the 16 colours of
// the original machines.
type Palette struct {
	Colors []color.RGBA
}

// NewPalette is the preferred method of initialisation for the Palette type.
func NewPalette(colors []color.RGBA) *Palette {
	return &Palette{Colors: colors}
}

func (p *Palette) String() string {
	return "standard palette"
}

// Begin implements the Colours interface.
func (p *Palette) Begin() {}

// Advance implements the Colours interface.
func (p *Palette) Advance(_ int) {}

// Attr implements the Colours interface.
func (p *Palette) Attr(attr uint8, flash bool) (color.RGBA, color.RGBA) {
	bright := (attr & AttrBright) >> 3
	ink := p.Colors[attr&AttrInk|bright]
	paper := p.Colors[(attr&AttrPaper)>>3|bright]
	if flash && attr&AttrFlash == AttrFlash {
		return paper, ink
	}
	return ink, paper
}

// Border implements the Colours interface.
func (p *Palette) Border(b uint8) color.RGBA {
	return p.Colors[b&0x07]
}

// Generation implements the Colours interface.
func (p *Palette) Generation() uint64 {
	return 0
}
