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
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/ula"
)

// State is the complete state of the Machine.
type State struct {
	ULA *ula.State
	CPU engine.Halt
}

// Frame returns the frame number of the state.
func (s *State) Frame() uint64 {
	return s.ULA.Frames
}

// Snapshot returns a copy of the state of the Machine.
func (m *Machine) Snapshot() (*State, error) {
	u, err := m.ULA.Snapshot()
	if err != nil {
		return nil, err
	}
	return &State{ULA: u, CPU: *m.CPU}, nil
}

// Plumb restores a state created by Snapshot(). If an error is returned the
// Machine is unchanged.
func (m *Machine) Plumb(s *State) error {
	if err := m.ULA.Plumb(s.ULA); err != nil {
		return err
	}
	*m.CPU = s.CPU
	return nil
}
