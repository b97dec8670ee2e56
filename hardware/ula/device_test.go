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

package ula_test

import (
	"github.com/jetsetilly/zxchip/hardware/bus"
)

// a bus device that records the accesses it sees.
type device struct {
	name     string
	reads    []int64
	advances []int64
	writes   []uint8
}

func (d *device) Name() string              { return d.name }
func (d *device) Clock() bus.Representation { return bus.FrameCycles }
func (d *device) Reset()                    { d.reads = d.reads[:0] }
func (d *device) AdvanceTo(local int64)     { d.advances = append(d.advances, local) }
func (d *device) NextFrame(_ int64)         {}

func (d *device) ReadIO(_ uint16, local int64) (uint8, bool, int) {
	d.reads = append(d.reads, local)
	return 0, false, 0
}

func (d *device) WriteIO(_ uint16, data uint8, _ int64) (uint8, int) {
	d.writes = append(d.writes, data)
	return data, 0
}
