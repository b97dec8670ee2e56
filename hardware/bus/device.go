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

package bus

import "github.com/jetsetilly/zxchip/hardware/audio"

// Device is the interface implemented by everything attached to the I/O
// address space. The local argument of every function is the current time in
// the representation returned by Clock().
type Device interface {
	// Name must be unique within the chain
	Name() string

	// the representation of time wanted by the device
	Clock() Representation

	// Reset is called when the machine is reset
	Reset()

	// ReadIO offers the read to the device. If the device does not claim the
	// read then the data value is ignored. The wait value is the number of
	// additional cycles the device imposes on the access
	ReadIO(port uint16, local int64) (data uint8, claimed bool, wait int)

	// WriteIO offers the write to the device. The forward value is the data
	// seen by the next device in the chain
	WriteIO(port uint16, data uint8, local int64) (forward uint8, wait int)

	// AdvanceTo brings the device's internal clock up to date
	AdvanceTo(local int64)

	// NextFrame is called once at the end of every frame. The eof value is
	// the end of the completed frame in the device's representation. The
	// device should carry any unfinished state into the next frame
	NextFrame(eof int64)
}

// EarSource is implemented by devices that drive the EAR input of the ULA.
type EarSource interface {
	EarIn(local int64) bool
}

// AudioSource is implemented by devices that produce sound. The times in the
// edge queue are measured in frame cycles, whatever the Clock() of the device.
// The queue is cleared by the ULA at the start of every frame.
type AudioSource interface {
	AudioEdges() *audio.EdgeQueue
}
