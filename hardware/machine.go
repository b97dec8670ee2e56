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

package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/peripherals/ay"
	"github.com/jetsetilly/zxchip/hardware/peripherals/joystick"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/peripherals/mouse"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/hardware/variants/scld"
	"github.com/jetsetilly/zxchip/hardware/variants/ulaplus"
)

// The engine halts at HaltAddress with the stack below StackTop. Both
// addresses are in RAM for every model.
const (
	HaltAddress = 0x6000
	StackTop    = 0x8000
)

// Peripherals lists the optional hardware to be added to a Machine.
type Peripherals struct {
	Kempston bool
	Mouse    bool
	ULAplus  bool

	// name of a fuller, sinclair or cursor joystick interface. empty for
	// none
	Joystick string

	// the AY is always present on the 128K and +3
	AY bool
}

// Machine is the root of the emulated hardware.
type Machine struct {
	Env *environment.Environment

	ULA *ula.ULA
	CPU *engine.Halt

	// nil if the peripheral is not present
	Kempston *kempston.Kempston
	Joystick *joystick.Joystick
	Mouse    *mouse.Mouse
	AY       *ay.AY
	ULAplus  *ulaplus.ULAplus
	SCLD     *scld.SCLD
}

// NewMachine creates a new Machine of the specified model and with the
// requested peripherals.
func NewMachine(env *environment.Environment, spec *specification.Spec, per Peripherals) (*Machine, error) {
	u, err := ula.NewULA(env, spec)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		Env: env,
		ULA: u,
		CPU: engine.NewHalt(HaltAddress, StackTop),
	}

	if spec.Paging == specification.PagingSCLD {
		m.SCLD, err = scld.Install(u)
		if err != nil {
			return nil, err
		}
	}

	if per.ULAplus {
		m.ULAplus, err = ulaplus.Install(u)
		if err != nil {
			return nil, err
		}
		m.ULAplus.SetEnabled(true)
	}

	if per.AY || spec.Paging == specification.Paging128K || spec.Paging == specification.PagingPlus3 {
		m.AY = ay.NewAY()
		if err := u.AttachDevice(m.AY); err != nil {
			return nil, err
		}
	}

	if per.Kempston {
		m.Kempston = kempston.NewKempston()
		if err := u.AttachDevice(m.Kempston); err != nil {
			return nil, err
		}
	}

	if per.Joystick != "" {
		kind, err := joystick.ParseKind(per.Joystick)
		if err != nil {
			return nil, err
		}
		m.Joystick = joystick.NewJoystick(kind)
		if err := u.AttachDevice(m.Joystick); err != nil {
			return nil, err
		}
	}

	if per.Mouse {
		m.Mouse = mouse.NewMouse()
		if err := u.AttachDevice(m.Mouse); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SetJoystick sets the state of every joystick attached to the machine.
func (m *Machine) SetJoystick(dir kempston.Direction) {
	for _, d := range []kempston.Direction{kempston.Up, kempston.Down, kempston.Left, kempston.Right, kempston.Fire} {
		if m.Kempston != nil {
			m.Kempston.Set(d, dir&d == d)
		}
		if m.Joystick != nil {
			m.Joystick.Set(d, dir&d == d)
		}
	}
}

// HasJoystick returns true if a joystick interface of any kind is attached.
func (m *Machine) HasJoystick() bool {
	return m.Kempston != nil || m.Joystick != nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(m.ULA.Spec().ID)
	for _, n := range m.ULA.Chain().Names() {
		s.WriteString(fmt.Sprintf(" +%s", n))
	}
	for _, pi := range m.ULA.Interceptors() {
		s.WriteString(fmt.Sprintf(" +%s", pi.Name()))
	}
	return s.String()
}

// Reset the machine. A hard reset also clears RAM and resets every device on
// the bus.
func (m *Machine) Reset(hard bool) {
	m.ULA.Reset(hard)
	m.CPU.Reset()
	m.CPU.SP = StackTop
}

// SetKeyboard sets the state of the keyboard for the next frame.
func (m *Machine) SetKeyboard(mx keyboard.Matrix) {
	m.ULA.SetKeyboard(mx)
}

// Frame returns the number of the current frame.
func (m *Machine) Frame() uint64 {
	return m.ULA.Frames()
}
