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

// Package specification contains the definitions of the machine models
// supported by the emulation. A Spec describes everything about a chipset that
// is fixed for the lifetime of the emulated machine: frame geometry, the
// position of the display fetch and the contention window, the CPU clock and
// the memory layout.
//
// Horizontal positions are given as "hc" values. An hc value is the cycle
// relative to the start of the line on which the display fetch begins. It
// can be negative when a position falls at the end of the previous line.
package specification

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/clocks"
	"github.com/jetsetilly/zxchip/hardware/coords"
)

// UnknownModel is the curated error pattern returned by Lookup().
const UnknownModel = "specification: unknown model (%s)"

// Paging identifies the memory paging scheme used by a model.
type Paging int

// List of valid Paging values.
const (
	Paging16K Paging = iota
	Paging48K
	Paging128K
	PagingSCLD
	PagingPlus3
)

// Spec is used to define the machine models.
type Spec struct {
	ID string

	// frame geometry in CPU cycles
	Geometry coords.Geometry

	// the first line of the 192 lines of the display area
	PixelLine int

	// hc of the first contended cycle of a display line
	ContentionHC int

	// the delay for each cycle of an eight cycle contention group. the first
	// entry is the delay at ContentionHC
	ContentionPattern [8]int

	// whether I/O accesses are subject to contention
	IOContention bool

	// whether reads from unclaimed ports return the value on the video bus
	FloatingBus bool

	// whether an I register in contended memory corrupts the display fetch
	Snow bool

	// the floating bus offset at hc is (hc - FetchHC)
	FetchHC int

	// the offset into the fetch sequence affected by the refresh address
	// during an M1 cycle is (hc - SnowHC)
	SnowHC int

	// hc at which the first display pixel is output. the border is output
	// in four cycle (eight pixel) groups either side of the display
	DisplayHC int

	// CPU clock speed in MHz
	ClockMHz float64

	// memory configuration
	Paging   Paging
	ROMs     int
	RAMBanks int

	// the number of frames per second
	FramesPerSecond float64

	// the colour palette. the first eight entries are the normal colours and
	// the second eight entries are the bright colours
	Colors []color.RGBA
}

func (spec *Spec) String() string {
	return fmt.Sprintf("%s %s", spec.ID, spec.Geometry)
}

// EOF is the number of cycles in a frame.
func (spec *Spec) EOF() int {
	return spec.Geometry.EOF()
}

// ContentionStart returns the linear cycle of the first contended cycle in
// the frame.
func (spec *Spec) ContentionStart() int {
	return spec.PixelLine*spec.Geometry.CyclesPerLine + spec.ContentionHC
}

// FetchStart returns the linear cycle of the first display fetch in the frame.
func (spec *Spec) FetchStart() int {
	return spec.PixelLine*spec.Geometry.CyclesPerLine + spec.FetchHC
}

// ClockHz returns the CPU clock speed in Hz.
func (spec *Spec) ClockHz() float64 {
	return clocks.Hz(spec.ClockMHz)
}

// Palette is the colour palette used by the original machines.
var Palette = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 21, G: 21, B: 201, A: 255},
	{R: 202, G: 33, B: 33, A: 255},
	{R: 203, G: 38, B: 203, A: 255},
	{R: 44, G: 203, B: 44, A: 255},
	{R: 47, G: 204, B: 204, A: 255},
	{R: 205, G: 205, B: 53, A: 255},
	{R: 205, G: 205, B: 205, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
	{R: 27, G: 27, B: 251, A: 255},
	{R: 252, G: 41, B: 41, A: 255},
	{R: 252, G: 47, B: 252, A: 255},
	{R: 55, G: 253, B: 55, A: 255},
	{R: 59, G: 254, B: 254, A: 255},
	{R: 255, G: 255, B: 65, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

var contentionULA = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

// Spec16K is the ZX Spectrum 16K.
var Spec16K = Spec{
	ID:                "16K",
	Geometry:          coords.Geometry{LinesPerFrame: 312, CyclesPerLine: 224},
	PixelLine:         64,
	ContentionHC:      -1,
	ContentionPattern: contentionULA,
	IOContention:      true,
	FloatingBus:       true,
	Snow:              true,
	FetchHC:           0,
	SnowHC:            2,
	DisplayHC:         4,
	ClockMHz:          clocks.ZX48,
	Paging:            Paging16K,
	ROMs:              1,
	RAMBanks:          1,
	FramesPerSecond:   50.08,
	Colors:            Palette,
}

// Spec48K is the ZX Spectrum 48K.
var Spec48K = Spec{
	ID:                "48K",
	Geometry:          coords.Geometry{LinesPerFrame: 312, CyclesPerLine: 224},
	PixelLine:         64,
	ContentionHC:      -1,
	ContentionPattern: contentionULA,
	IOContention:      true,
	FloatingBus:       true,
	Snow:              true,
	FetchHC:           0,
	SnowHC:            2,
	DisplayHC:         4,
	ClockMHz:          clocks.ZX48,
	Paging:            Paging48K,
	ROMs:              1,
	RAMBanks:          3,
	FramesPerSecond:   50.08,
	Colors:            Palette,
}

// Spec48KNTSC is the ZX Spectrum 48K as sold in NTSC territories.
var Spec48KNTSC = Spec{
	ID:                "48K-NTSC",
	Geometry:          coords.Geometry{LinesPerFrame: 264, CyclesPerLine: 224},
	PixelLine:         40,
	ContentionHC:      -1,
	ContentionPattern: contentionULA,
	IOContention:      true,
	FloatingBus:       true,
	Snow:              true,
	FetchHC:           0,
	SnowHC:            2,
	DisplayHC:         4,
	ClockMHz:          clocks.ZX48,
	Paging:            Paging48K,
	ROMs:              1,
	RAMBanks:          3,
	FramesPerSecond:   59.19,
	Colors:            Palette,
}

// Spec128K is the ZX Spectrum 128K and +2.
var Spec128K = Spec{
	ID:                "128K",
	Geometry:          coords.Geometry{LinesPerFrame: 311, CyclesPerLine: 228},
	PixelLine:         63,
	ContentionHC:      -3,
	ContentionPattern: contentionULA,
	IOContention:      true,
	FloatingBus:       true,
	Snow:              true,
	FetchHC:           -2,
	SnowHC:            0,
	DisplayHC:         2,
	ClockMHz:          clocks.ZX128,
	Paging:            Paging128K,
	ROMs:              2,
	RAMBanks:          8,
	FramesPerSecond:   50.02,
	Colors:            Palette,
}

// SpecTC2048 is the Timex TC2048. The SCLD behaves like the 48K ULA for the
// purposes of timing.
var SpecTC2048 = Spec{
	ID:                "TC2048",
	Geometry:          coords.Geometry{LinesPerFrame: 312, CyclesPerLine: 224},
	PixelLine:         64,
	ContentionHC:      -1,
	ContentionPattern: contentionULA,
	IOContention:      true,
	FloatingBus:       true,
	Snow:              true,
	FetchHC:           0,
	SnowHC:            2,
	DisplayHC:         4,
	ClockMHz:          clocks.TC2048,
	Paging:            PagingSCLD,
	ROMs:              1,
	RAMBanks:          3,
	FramesPerSecond:   50.08,
	Colors:            Palette,
}

var contentionULA3 = [8]int{1, 0, 7, 6, 5, 4, 3, 2}

// SpecPlus3 is the ZX Spectrum +2A and +3. The gate array shares the frame of
// the 128K but contends memory cycles only. There is no floating bus and no
// snow effect.
var SpecPlus3 = Spec{
	ID:                "PLUS3",
	Geometry:          coords.Geometry{LinesPerFrame: 311, CyclesPerLine: 228},
	PixelLine:         63,
	ContentionHC:      -3,
	ContentionPattern: contentionULA3,
	IOContention:      false,
	FloatingBus:       false,
	Snow:              false,
	FetchHC:           -2,
	SnowHC:            0,
	DisplayHC:         2,
	ClockMHz:          clocks.Plus3,
	Paging:            PagingPlus3,
	ROMs:              4,
	RAMBanks:          8,
	FramesPerSecond:   50.02,
	Colors:            Palette,
}

// SpecList is the list of model IDs accepted by Lookup().
var SpecList = []string{Spec16K.ID, Spec48K.ID, Spec48KNTSC.ID, Spec128K.ID, SpecPlus3.ID, SpecTC2048.ID}

// Lookup returns the Spec for the model ID. The ID is not case sensitive.
func Lookup(id string) (*Spec, error) {
	switch strings.ToUpper(id) {
	case Spec16K.ID:
		return &Spec16K, nil
	case Spec48K.ID:
		return &Spec48K, nil
	case Spec48KNTSC.ID:
		return &Spec48KNTSC, nil
	case Spec128K.ID:
		return &Spec128K, nil
	case SpecPlus3.ID, "+3", "+2A":
		return &SpecPlus3, nil
	case SpecTC2048.ID:
		return &SpecTC2048, nil
	}
	return nil, curated.Errorf(UnknownModel, id)
}
