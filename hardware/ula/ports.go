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
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/video"
	"github.com/jetsetilly/zxchip/logger"
)

// ULA port bits.
const (
	portBorder = 0x07
	portMIC    = 0x08
	portEAR    = 0x10
	portEarIn  = 0x40
)

func (ula *ULA) readPort(port uint16) (uint8, int) {
	for _, pi := range ula.interceptors {
		if data, ok := pi.ReadPort(port, ula.t); ok {
			return data, 0
		}
	}

	now := ula.busTime(ula.t)
	if err := ula.chain.AdvanceTo(now); err != nil {
		ula.fault(err)
		return 0xff, 0
	}

	data, claimed, wait, err := ula.chain.ReadIO(port, now)
	if err != nil {
		ula.fault(err)
		return 0xff, 0
	}

	switch {
	case ula.decoding.ULAPort.Match(port):
		v := ula.ReadULAPort(port, ula.t)
		if claimed {
			v &= data
		}
		data = v
	case claimed:
	case ula.decoding.FloatingBus:
		data = ula.FloatingBus(ula.t)
	default:
		data = 0xff
	}

	// the 128K paging register latches whatever is on the data bus when the
	// port is read
	if ula.spec.Paging == specification.Paging128K && pagingPort.Match(port) {
		ula.writePaging(data, false)
	}

	return data, wait
}

func (ula *ULA) writePort(port uint16, data uint8) int {
	for _, pi := range ula.interceptors {
		if pi.WritePort(port, data, ula.t) {
			return 0
		}
	}

	if ula.decoding.ULAPort.Match(port) {
		ula.WriteULAPort(data, ula.t)
	}

	switch ula.spec.Paging {
	case specification.Paging128K:
		if pagingPort.Match(port) {
			ula.writePaging(data, false)
		}
	case specification.PagingPlus3:
		if plus3PagingPort.Match(port) {
			ula.writePaging(data, false)
		} else if plus3ExtPort.Match(port) {
			ula.writePaging(data, true)
		}
	}

	now := ula.busTime(ula.t)
	if err := ula.chain.AdvanceTo(now); err != nil {
		ula.fault(err)
		return 0
	}

	wait, err := ula.chain.WriteIO(port, data, now)
	if err != nil {
		ula.fault(err)
	}
	return wait
}

// ReadULAPort returns the value of the ULA port, not including the value of
// any bus device. The keyboard half-rows are selected by the high byte of the
// port and bit 6 is the EAR input.
func (ula *ULA) ReadULAPort(port uint16, t int) uint8 {
	v := ula.keyboard.Read(uint8(port >> 8))
	if !ula.earIn(t) {
		v &^= portEarIn
	}
	return v & ula.decoding.ReadMask
}

// WriteULAPort changes the border colour and the EAR and MIC outputs.
func (ula *ULA) WriteULAPort(data uint8, t int) {
	border := data & portBorder
	if border != ula.border {
		ula.border = border
		ula.borderChanges = append(ula.borderChanges, video.BorderChange{Time: t, Colour: border})
	}
	ula.earmic.Push(t, (data&(portEAR|portMIC))>>3)
}

// FloatingBus returns the value on the data bus at time t when nothing is
// driving it. During the display fetch this is the byte being read by the
// video circuitry.
func (ula *ULA) FloatingBus(t int) uint8 {
	b := video.BeamAt(ula.spec, t)
	if b.Y < 0 || b.Y >= video.PixelLines || b.H < 0 || b.H > 123 || b.H&4 != 0 {
		return 0xff
	}

	col := (b.H >> 3) << 1
	screen := ula.mem.ScreenData()
	switch b.H & 3 {
	case 0:
		return screen[ula.layout.Pixel(b.Y, col)]
	case 1:
		return screen[ula.layout.Attr(b.Y, col)]
	case 2:
		return screen[ula.layout.Pixel(b.Y, col+1)]
	}
	return screen[ula.layout.Attr(b.Y, col+1)]
}

// write to a paging register. ext is true for the second register of the +3.
// a change of screen bank freezes the display cells that have already been
// fetched.
func (ula *ULA) writePaging(data uint8, ext bool) {
	if ula.mem.Registers.Locked {
		if !ula.lockLogged {
			ula.lockLogged = true
			logger.Logf(ula.env, "ula", "paging registers are locked. write of %#02x ignored", data)
		}
		return
	}

	if !ext && (data^ula.mem.Registers.Port7FFD)&memory.Page128Shadow != 0 {
		ula.cache.Freeze(ula.mem.ScreenData(), ula.layout, ula.beam())
	}

	switch pager := ula.mem.Pager().(type) {
	case memory.Pager128:
		pager.Write(ula.mem, data)
	case memory.PagerPlus3:
		if ext {
			pager.WriteExt(ula.mem, data)
		} else {
			pager.Write(ula.mem, data)
		}
	}
}
