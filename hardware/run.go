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
	"github.com/jetsetilly/zxchip/govern"
)

// Run the emulation one frame at a time until the continue check returns a
// state that isn't active. A nil continue check runs the emulation forever.
//
// The continue check is called after every frame, or repeatedly if the
// emulation is paused.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running
	for state.Active() {
		// paused and rewinding states do not advance the emulation
		if state == govern.Running {
			if err := m.ULA.RunFrame(m.CPU); err != nil {
				return err
			}
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount runs the emulation for the specified number of frames. The
// continue check is called after every frame with the number of the frame
// that has just completed. Returning govern.Ending stops the run early.
func (m *Machine) RunForFrameCount(numFrames int, continueCheck func(frame uint64) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (govern.State, error) { return govern.Running, nil }
	}

	for i := 0; i < numFrames; i++ {
		if err := m.ULA.RunFrame(m.CPU); err != nil {
			return err
		}

		state, err := continueCheck(m.ULA.Frames())
		if err != nil {
			return err
		}
		if state == govern.Ending {
			break // for loop
		}
	}

	return nil
}
