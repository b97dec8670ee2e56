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

// Package ulaplus implements the ULAplus palette extension. The extension
// adds a 64 entry palette that replaces the fixed colours of the ULA.
//
// The palette is programmed through two ports. The register port selects
// either a palette entry or the mode register. The data port writes or reads
// the selected register.
//
// Changes to the palette and to the mode are timestamped and the rendered
// image reflects the time of the change to the nearest group of eight pixels.
//
// The screen modes of the SCLD are also available through ULAplus. On a machine
// with an SCLD the SCLD control register is used. On other machines ULAplus
// decodes the SCLD control port itself.
package ulaplus

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"image/color"

	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/hardware/variants/scld"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// Ports used by ULAplus. Both ports are fully decoded.
const (
	RegisterPort = 0xbf3b
	DataPort     = 0xff3b
)

// register port groups.
const (
	groupMask    = 0xc0
	groupPalette = 0x00
	groupMode    = 0x40
	indexMask    = 0x3f
)

// Mode register bits.
const (
	ModePalette   = 0x01
	ModeGreyscale = 0x02
)

// PaletteSize is the number of entries in the palette.
const PaletteSize = 64

// the value of a change index that indicates the mode register.
const modeIndex = -1

type change struct {
	Time  int
	Index int
	Value uint8
}

// regs is the state that is rendered.
type regs struct {
	Palette [PaletteSize]uint8
	Mode    uint8
}

func (r *regs) apply(c change) {
	if c.Index == modeIndex {
		r.Mode = c.Value
	} else {
		r.Palette[c.Index] = c.Value
	}
}

// an installed interceptor with an SCLD control register.
type ctrlRegister interface {
	Ctrl() uint8
}

// ULAplus is a chipset variant that adds the ULAplus palette to the ULA.
type ULAplus struct {
	ula      *ula.ULA
	standard *video.Palette

	enabled  bool
	register uint8

	// the SCLD of the machine. if there is no SCLD the screen mode written to
	// the SCLD control port is kept in scldMode. the port can only be read if
	// scldModeRW is true
	scld       ctrlRegister
	scldMode   uint8
	scldModeRW bool

	// the current registers, the registers at the start of the frame and the
	// changes made since the start of the frame
	current regs
	start   regs
	changes []change

	// the renderer's view of the registers
	render    regs
	renderIdx int

	generation uint64
}

// Install the ULAplus variant into the ULA. The variant is enabled. An SCLD
// must be installed before ULAplus if the two are to work together.
func Install(u *ula.ULA) (*ULAplus, error) {
	plus := &ULAplus{
		ula:      u,
		standard: video.NewPalette(u.Spec().Colors),
		enabled:  true,
	}
	for _, pi := range u.Interceptors() {
		if c, ok := pi.(ctrlRegister); ok {
			plus.scld = c
		}
	}
	if err := u.AddInterceptor(plus); err != nil {
		return nil, err
	}
	u.SetColours(plus)
	return plus, nil
}

// Name implements the ula.PortInterceptor interface.
func (plus *ULAplus) Name() string {
	return "ulaplus"
}

func (plus *ULAplus) String() string {
	if !plus.enabled {
		return "ulaplus (disabled)"
	}
	return fmt.Sprintf("ulaplus: mode %02x", plus.current.Mode)
}

// SetEnabled turns the variant on or off. A disabled variant does not respond
// to its ports and the image is rendered with the standard colours.
func (plus *ULAplus) SetEnabled(enabled bool) {
	if plus.enabled == enabled {
		return
	}
	plus.enabled = enabled
	plus.generation++
}

// Enabled returns true if the variant is enabled.
func (plus *ULAplus) Enabled() bool {
	return plus.enabled
}

// SetReadSCLDMode allows the SCLD control port to be read when there is no
// SCLD in the machine. Reads are not allowed by default.
func (plus *ULAplus) SetReadSCLDMode(rw bool) {
	plus.scldModeRW = rw
}

// SCLDMode returns the value last written to the SCLD control port. If the
// machine has an SCLD the value of its control register is returned.
func (plus *ULAplus) SCLDMode() uint8 {
	if plus.scld != nil {
		return plus.scld.Ctrl()
	}
	return plus.scldMode
}

// Mode returns the current value of the mode register.
func (plus *ULAplus) Mode() uint8 {
	return plus.current.Mode
}

// Palette returns the current value of the palette entry. The index is
// masked to the size of the palette.
func (plus *ULAplus) Palette(index int) uint8 {
	return plus.current.Palette[index&indexMask]
}

// Reset implements the ula.Resetter interface. The palette, the mode register
// and the SCLD screen mode are cleared. Whether the variant is enabled is not
// changed.
func (plus *ULAplus) Reset() {
	plus.register = 0
	if plus.scld == nil && plus.scldMode != 0 {
		plus.scldMode = 0
		plus.ula.SetLayout(video.Standard)
	}
	plus.current = regs{}
	plus.start = regs{}
	plus.changes = plus.changes[:0]
	plus.generation++
}

// ReadPort implements the ula.PortInterceptor interface.
func (plus *ULAplus) ReadPort(port uint16, _ int) (uint8, bool) {
	if !plus.enabled {
		return 0, false
	}
	if plus.scld == nil && plus.scldModeRW && scld.CtrlPort.Match(port) {
		return plus.scldMode, true
	}
	if port != DataPort {
		return 0, false
	}
	if plus.register&groupMask == groupMode {
		return plus.current.Mode, true
	}
	return plus.current.Palette[plus.register&indexMask], true
}

// WritePort implements the ula.PortInterceptor interface.
func (plus *ULAplus) WritePort(port uint16, data uint8, t int) bool {
	if !plus.enabled {
		return false
	}

	if plus.scld == nil && scld.CtrlPort.Match(port) {
		plus.scldMode = data
		plus.ula.SetLayout(screenMode(data).Layout())
		return true
	}

	switch port {
	case RegisterPort:
		plus.register = data
		if data&groupMask == groupMode {
			plus.ula.SetLayout(screenMode(data | plus.SCLDMode()).Layout())
		}
		return true

	case DataPort:
		switch plus.register & groupMask {
		case groupPalette:
			idx := int(plus.register & indexMask)
			if plus.current.Palette[idx] != data {
				plus.push(change{Time: t, Index: idx, Value: data})
			}
		case groupMode:
			if plus.current.Mode != data {
				plus.push(change{Time: t, Index: modeIndex, Value: data})
			}
		}
		return true
	}

	return false
}

func (plus *ULAplus) push(c change) {
	plus.current.apply(c)
	plus.changes = append(plus.changes, c)
	plus.generation++
}

// NextFrame implements the ula.FrameListener interface.
func (plus *ULAplus) NextFrame() {
	if len(plus.changes) > 0 {
		// the final state of the previous frame must be redrawn
		plus.generation++
	}
	plus.start = plus.current
	plus.changes = plus.changes[:0]
}

// Begin implements the video.Colours interface.
func (plus *ULAplus) Begin() {
	plus.render = plus.start
	plus.renderIdx = 0
}

// the SCLD screen mode bits of a value written to the SCLD control port or to
// the mode group of the register port.
func screenMode(v uint8) scld.ScreenMode {
	return scld.ScreenMode(v & scld.CtrlScreenMode)
}

// Advance implements the video.Colours interface. Changes made before cycle t
// are applied.
func (plus *ULAplus) Advance(t int) {
	for plus.renderIdx < len(plus.changes) && plus.changes[plus.renderIdx].Time < t {
		plus.render.apply(plus.changes[plus.renderIdx])
		plus.renderIdx++
	}
}

// Attr implements the video.Colours interface. In palette mode the flash and
// bright bits select one of four groups of sixteen entries.
func (plus *ULAplus) Attr(attr uint8, flash bool) (color.RGBA, color.RGBA) {
	if !plus.enabled {
		return plus.standard.Attr(attr, flash)
	}
	if plus.render.Mode&ModePalette == 0 {
		ink, paper := plus.standard.Attr(attr, flash)
		return plus.classic(ink), plus.classic(paper)
	}
	clut := (attr & 0xc0) >> 2
	ink := clut | (attr & video.AttrInk)
	paper := clut | ((attr & video.AttrPaper) >> 3) | 0x08
	return plus.entry(ink), plus.entry(paper)
}

// Border implements the video.Colours interface.
func (plus *ULAplus) Border(b uint8) color.RGBA {
	if !plus.enabled {
		return plus.standard.Border(b)
	}
	if plus.render.Mode&ModePalette == 0 {
		return plus.classic(plus.standard.Border(b))
	}
	return plus.entry(0x08 | (b & 0x07))
}

// Generation implements the video.Colours interface.
func (plus *ULAplus) Generation() uint64 {
	return plus.generation
}

func (plus *ULAplus) entry(idx uint8) color.RGBA {
	v := plus.render.Palette[idx&indexMask]
	if plus.render.Mode&ModeGreyscale == ModeGreyscale {
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return GRB(v)
}

// a colour of the standard palette. in greyscale mode the colour is converted
// to its luminance.
func (plus *ULAplus) classic(c color.RGBA) color.RGBA {
	if plus.render.Mode&ModeGreyscale == 0 {
		return c
	}
	return Grey(c)
}

// Grey converts a colour to a grey of the same luminance.
func Grey(c color.RGBA) color.RGBA {
	v := uint8((13933*uint32(c.R) + 46871*uint32(c.G) + 4732*uint32(c.B)) >> 16)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// expand a three bit colour component to eight bits.
func expand3(v uint8) uint8 {
	return v<<5 | v<<2 | v>>1
}

// GRB converts a palette entry to a colour. Entries are in GRB 3:3:2 format.
// The missing low bit of blue is the OR of the two blue bits.
func GRB(v uint8) color.RGBA {
	g := (v >> 5) & 0x07
	r := (v >> 2) & 0x07
	b := v & 0x03
	b = b<<1 | (b>>1 | b&0x01)
	return color.RGBA{R: expand3(r), G: expand3(g), B: expand3(b), A: 255}
}

type state struct {
	Enabled  bool
	Register uint8
	ScldMode uint8
	Current  regs
	Start    regs
	Changes  []change
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (plus *ULAplus) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	err := gob.NewEncoder(&b).Encode(state{
		Enabled:  plus.enabled,
		Register: plus.register,
		ScldMode: plus.scldMode,
		Current:  plus.current,
		Start:    plus.start,
		Changes:  plus.changes,
	})
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (plus *ULAplus) UnmarshalBinary(data []byte) error {
	var s state
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	for _, c := range s.Changes {
		if c.Index < modeIndex || c.Index >= PaletteSize {
			return fmt.Errorf("ulaplus: palette index out of range (%d)", c.Index)
		}
	}
	plus.enabled = s.Enabled
	plus.register = s.Register
	plus.scldMode = s.ScldMode
	plus.current = s.Current
	plus.start = s.Start
	plus.changes = append(plus.changes[:0], s.Changes...)
	plus.generation++
	return nil
}
