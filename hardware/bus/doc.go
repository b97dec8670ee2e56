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

// Package bus implements the chain of devices attached to the I/O address
// space of the machine.
//
// Devices are offered every port access in the order they were attached. For
// a read, a device can claim the access and supply the data. Only one device
// should claim a read. If more than one does then the first claim wins and the
// second claim is logged (or causes a panic if the StrictBus preference is
// set). If no device claims a read then the caller supplies the value, which
// for the ULA is the floating bus.
//
// For a write, each device sees the data as forwarded by the previous device
// and can modify the data seen by devices later in the chain.
//
// Devices declare how they want to see time with the Clock() function. The
// chain converts the shared frame relative timestamp into the device's
// representation with the Convert() function before every call.
//
// Devices can only be attached and detached at frame boundaries. Requests
// made while a frame is being run are deferred until the frame has completed
// and the NextFrame() function of every device has been called.
package bus
