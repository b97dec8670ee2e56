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
	"github.com/jetsetilly/zxchip/hardware/bus"
)

// AttachDevice adds the device to the end of the bus chain. If a frame is
// running then the device will be attached at the end of the frame.
func (ula *ULA) AttachDevice(dev bus.Device) error {
	return ula.chain.Attach(dev)
}

// DetachDevice removes the named device from the bus chain. If a frame is
// running then the device will be detached at the end of the frame.
func (ula *ULA) DetachDevice(name string) error {
	return ula.chain.Detach(name)
}

// QueueHost defers the function until the end of the current frame. If the
// current frame has already completed then the function will be run at the
// end of the next frame.
//
// Safe to call from any goroutine.
func (ula *ULA) QueueHost(f func()) {
	ula.hostCrit.Lock()
	defer ula.hostCrit.Unlock()
	ula.host = append(ula.host, f)
}
