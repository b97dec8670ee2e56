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

// Package scld implements the Timex SCLD, the chipset of the TC2048. The SCLD
// is a ULA with extra screen modes and an MMU that can replace any 8K slot of
// the address space with the DOCK cartridge or the EXROM.
//
// The hi-resolution screen mode is not rendered. The mode is stored and can
// be read back from the control port but the image is rendered as though the
// standard mode was selected.
package scld

import (
	"fmt"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// WrongModel is the curated error pattern returned by Install() when the
// machine model does not use the SCLD paging scheme.
const WrongModel = "scld: model %s does not have an SCLD"

// Ports used by the SCLD. Only the low byte of the address is decoded.
var (
	CtrlPort = bus.PortAddress{Mask: 0x00ff, Bits: 0x00ff}
	MMUPort  = bus.PortAddress{Mask: 0x00ff, Bits: 0x00f4}
)

// Decoding of the SCLD. The ULA port is fully decoded on the low byte, the
// unused bits of the ULA port read as zero and there is no floating bus.
var Decoding = ula.Decoding{
	ULAPort:     bus.PortAddress{Mask: 0x00ff, Bits: 0x00fe},
	ReadMask:    0x5f,
	FloatingBus: false,
	Snow:        false,
}

// Control register bits.
const (
	CtrlScreenMode  = 0x07
	CtrlHiResColour = 0x38
	CtrlIntDisable  = 0x40
	CtrlEXROM       = 0x80
)

// ScreenMode is the value of the screen mode bits of the control register.
type ScreenMode uint8

// List of screen modes.
const (
	ModeStandard  ScreenMode = 0x00
	ModeAlternate ScreenMode = 0x01
	ModeHiColour  ScreenMode = 0x02
	ModeHiRes     ScreenMode = 0x06
)

func (m ScreenMode) String() string {
	switch {
	case m&0x04 == 0x04 && m&0x02 == 0x02:
		return "hi-res"
	case m&0x02 == 0x02:
		return "hi-colour"
	case m&0x01 == 0x01:
		return "alternate"
	}
	return "standard"
}

// Layout returns the video.Layout used to render the screen mode.
func (m ScreenMode) Layout() video.Layout {
	switch {
	case m&0x04 == 0x04 && m&0x02 == 0x02:
		return video.Standard
	case m&0x02 == 0x02:
		return video.HiColour
	case m&0x01 == 0x01:
		return video.Alternate
	}
	return video.Standard
}

// SCLD is the chipset variant that turns the ULA into an SCLD.
type SCLD struct {
	ula   *ula.ULA
	pager memory.PagerSCLD
	ctrl  uint8
}

// Install the SCLD into the ULA. The model of the ULA must use the SCLD
// paging scheme.
func Install(u *ula.ULA) (*SCLD, error) {
	if u.Spec().Paging != specification.PagingSCLD {
		return nil, curated.Errorf(WrongModel, u.Spec().ID)
	}

	scld := &SCLD{ula: u}
	if err := u.AddInterceptor(scld); err != nil {
		return nil, err
	}
	u.SetDecoding(Decoding)
	u.SetInterruptMask(scld.InterruptDisabled)

	return scld, nil
}

// Name implements the ula.PortInterceptor interface.
func (scld *SCLD) Name() string {
	return "scld"
}

func (scld *SCLD) String() string {
	return fmt.Sprintf("scld: %s ctrl=%02x mmu=%02x", scld.Mode(), scld.ctrl, scld.ula.Memory().Registers.MMU)
}

// Ctrl returns the value of the control register.
func (scld *SCLD) Ctrl() uint8 {
	return scld.ctrl
}

// Mode returns the current screen mode.
func (scld *SCLD) Mode() ScreenMode {
	return ScreenMode(scld.ctrl & CtrlScreenMode)
}

// HiResColour returns the ink colour of the hi-resolution screen mode. The
// paper is the complementary colour.
func (scld *SCLD) HiResColour() uint8 {
	return (scld.ctrl & CtrlHiResColour) >> 3
}

// InterruptDisabled returns true if the interrupt is disabled by the control
// register. Installed in the ULA as the ula.InterruptMask.
func (scld *SCLD) InterruptDisabled() bool {
	return scld.ctrl&CtrlIntDisable == CtrlIntDisable
}

// ReadPort implements the ula.PortInterceptor interface.
func (scld *SCLD) ReadPort(port uint16, _ int) (uint8, bool) {
	switch {
	case CtrlPort.Match(port):
		return scld.ctrl, true
	case MMUPort.Match(port):
		return scld.ula.Memory().Registers.MMU, true
	}
	return 0, false
}

// WritePort implements the ula.PortInterceptor interface.
func (scld *SCLD) WritePort(port uint16, data uint8, _ int) bool {
	switch {
	case CtrlPort.Match(port):
		scld.WriteCtrl(data)
		return true
	case MMUPort.Match(port):
		scld.pager.WriteMMU(scld.ula.Memory(), data)
		return true
	}
	return false
}

// WriteCtrl writes a value to the control register.
func (scld *SCLD) WriteCtrl(data uint8) {
	prev := scld.ctrl
	scld.ctrl = data

	if (prev^data)&CtrlEXROM != 0 {
		scld.pager.SelectEXROM(scld.ula.Memory(), data&CtrlEXROM == CtrlEXROM)
	}

	// SetLayout() does nothing if the layout has not changed
	scld.ula.SetLayout(scld.Mode().Layout())
}

// Reset implements the ula.Resetter interface.
func (scld *SCLD) Reset() {
	scld.ctrl = 0
	scld.ula.SetLayout(video.Standard)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (scld *SCLD) MarshalBinary() ([]byte, error) {
	return []byte{scld.ctrl}, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// layout and the memory registers are restored by the ULA.
func (scld *SCLD) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return fmt.Errorf("scld: state should be one byte not %d", len(data))
	}
	scld.ctrl = data[0]
	return nil
}
