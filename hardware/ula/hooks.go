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

package ula

import (
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// DuplicateInterceptor is the curated error pattern returned by
// AddInterceptor() when the name of the interceptor is already in use.
const DuplicateInterceptor = "ula: interceptor already installed (%s)"

// PortInterceptor implementations see every I/O access before the ULA. The t
// argument is the number of cycles since the start of the frame.
type PortInterceptor interface {
	Name() string

	// if handled is true then the data is the result of the read and the
	// read goes no further
	ReadPort(port uint16, t int) (data uint8, handled bool)

	// if handled is true then the write goes no further
	WritePort(port uint16, data uint8, t int) (handled bool)
}

// FrameListener can be implemented by a PortInterceptor or by a video.Colours
// implementation that has been installed in the ULA. The NextFrame() function
// is called at the start of every frame.
type FrameListener interface {
	NextFrame()
}

// Resetter can be implemented by a PortInterceptor. The Reset() function is
// called at the end of a hard reset of the ULA.
type Resetter interface {
	Reset()
}

// InterruptMask returns true if the interrupt should be suppressed.
type InterruptMask func() bool

// AddInterceptor installs a PortInterceptor. Interceptors are offered accesses
// in the order in which they were installed.
func (ula *ULA) AddInterceptor(pi PortInterceptor) error {
	for _, i := range ula.interceptors {
		if i.Name() == pi.Name() {
			return curated.Errorf(DuplicateInterceptor, pi.Name())
		}
	}
	ula.interceptors = append(ula.interceptors, pi)
	return nil
}

// Interceptors returns the installed PortInterceptors.
func (ula *ULA) Interceptors() []PortInterceptor {
	return ula.interceptors
}

// SetInterruptMask installs the function that decides whether the interrupt
// is suppressed. A nil value removes the mask.
func (ula *ULA) SetInterruptMask(mask InterruptMask) {
	ula.intMask = mask
}

// SetDecoding changes how I/O and memory accesses are decoded.
func (ula *ULA) SetDecoding(d Decoding) {
	ula.decoding = d
}

// Decoding returns the current decoding.
func (ula *ULA) Decoding() Decoding {
	return ula.decoding
}

// SetColours changes how attributes and border values are turned into
// colours. A nil value restores the standard palette.
func (ula *ULA) SetColours(colours video.Colours) {
	if colours == nil {
		colours = video.NewPalette(ula.spec.Colors)
	}
	ula.renderer.SetColours(colours)
}

// Colours returns the current video.Colours implementation.
func (ula *ULA) Colours() video.Colours {
	return ula.renderer.Colours()
}

// SetLayout changes the organisation of the screen. Cells that have already
// been fetched during the current frame keep the value fetched with the
// previous layout.
func (ula *ULA) SetLayout(layout video.Layout) {
	if layout == ula.layout {
		return
	}
	ula.cache.Freeze(ula.mem.ScreenData(), ula.layout, ula.beam())
	ula.layout = layout
}

// Layout returns the current organisation of the screen.
func (ula *ULA) Layout() video.Layout {
	return ula.layout
}

// SetBorderSize changes the size of the border in the rendered image.
func (ula *ULA) SetBorderSize(b video.BorderSize) {
	ula.renderer.SetBorderSize(b)
}

// the position of the display fetch at the current time.
func (ula *ULA) beam() video.Beam {
	return video.BeamAt(ula.spec, ula.t)
}
