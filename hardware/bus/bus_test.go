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

package bus_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/jetsetilly/zxchip/test"
	"github.com/spf13/afero"
)

var geom = coords.Geometry{LinesPerFrame: 312, CyclesPerLine: 224}

// a simple device for testing. the device claims reads of its port and
// records every write it sees.
type device struct {
	name  string
	port  bus.PortAddress
	data  uint8
	wait  int
	clock bus.Representation

	// applied to data written to the device before it is forwarded
	xor uint8

	writes  []uint8
	times   []int64
	frames  int
	lastEOF int64

	// unmarshalling fails. if partial is true the device state is changed
	// before the failure
	failUnmarshal bool
	partial       bool
}

func (d *device) Name() string              { return d.name }
func (d *device) Clock() bus.Representation { return d.clock }
func (d *device) Reset()                    { d.writes = d.writes[:0] }
func (d *device) AdvanceTo(local int64)     { d.times = append(d.times, local) }
func (d *device) NextFrame(eof int64) {
	d.frames++
	d.lastEOF = eof
}
func (d *device) MarshalBinary() ([]byte, error) { return []byte{d.data}, nil }

func (d *device) UnmarshalBinary(b []byte) error {
	if d.failUnmarshal {
		if d.partial {
			d.data = b[0]
		}
		return errors.New("unmarshal failed")
	}
	d.data = b[0]
	return nil
}

func (d *device) ReadIO(port uint16, local int64) (uint8, bool, int) {
	d.times = append(d.times, local)
	return d.data, d.port.Match(port), d.wait
}

func (d *device) WriteIO(port uint16, data uint8, local int64) (uint8, int) {
	d.writes = append(d.writes, data)
	return data ^ d.xor, d.wait
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	prefs, err := preferences.NewPreferences(afero.NewMemMapFs())
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prefs)
	test.DemandSuccess(t, err)
	return env
}

func TestPortAddress(t *testing.T) {
	p := bus.PortAddress{Mask: 0x8002, Bits: 0x0000}
	test.ExpectSuccess(t, p.Match(0x7ffd))
	test.ExpectFailure(t, p.Match(0xfffd))
	test.ExpectFailure(t, p.Match(0x7fff))
}

func TestConvert(t *testing.T) {
	tm := bus.Time{Geometry: geom, Frame: 2, TS: coords.Timestamp{Line: 3, Cycle: 10}}

	v, err := bus.Convert(tm, bus.FrameCycles)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, int64(3*224+10))

	v, err = bus.Convert(tm, bus.MachineCycles)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, int64(2*69888+3*224+10))

	v, err = bus.Convert(tm, bus.FrameLines)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, int64(3)<<32|10)

	tm.TS.Cycle = -1
	_, err = bus.Convert(tm, bus.FrameLines)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, coords.TimingViolation))
}

func TestAttachDetach(t *testing.T) {
	c := bus.NewChain(newEnv(t))

	a := &device{name: "a"}
	b := &device{name: "b"}
	d := &device{name: "d"}

	test.ExpectSuccess(t, c.Attach(a))
	test.ExpectSuccess(t, c.Attach(b))
	test.ExpectSuccess(t, c.Attach(d))
	test.ExpectEquality(t, c.String(), "a -> b -> d")

	err := c.Attach(&device{name: "b"})
	test.ExpectSuccess(t, curated.Is(err, bus.DuplicateDevice))

	err = c.Detach("x")
	test.ExpectSuccess(t, curated.Is(err, bus.UnknownDevice))

	test.ExpectSuccess(t, c.Detach("b"))
	test.ExpectEquality(t, c.String(), "a -> d")

	// the freed node is reused but the new device is still at the end
	test.ExpectSuccess(t, c.Attach(&device{name: "e"}))
	test.ExpectEquality(t, c.String(), "a -> d -> e")

	test.ExpectSuccess(t, c.Detach("a"))
	test.ExpectSuccess(t, c.Detach("e"))
	test.ExpectEquality(t, c.String(), "d")
	test.ExpectSuccess(t, c.Attach(a))
	test.ExpectEquality(t, c.String(), "d -> a")

	dev, ok := c.Lookup("a")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dev.Name(), "a")
	_, ok = c.Lookup("b")
	test.ExpectFailure(t, ok)
}

func TestDeferred(t *testing.T) {
	c := bus.NewChain(newEnv(t))

	a := &device{name: "a"}
	test.ExpectSuccess(t, c.Attach(a))

	c.Begin()
	test.ExpectSuccess(t, c.Attach(&device{name: "b"}))
	test.ExpectSuccess(t, c.Detach("a"))
	test.ExpectEquality(t, c.String(), "a")

	// the projected state is used to validate operations
	err := c.Attach(&device{name: "b"})
	test.ExpectSuccess(t, curated.Is(err, bus.DuplicateDevice))
	err = c.Detach("a")
	test.ExpectSuccess(t, curated.Is(err, bus.UnknownDevice))

	eof := bus.Time{Geometry: geom, TS: coords.Timestamp{Line: 312}}
	test.ExpectSuccess(t, c.NextFrame(eof))
	test.ExpectEquality(t, c.String(), "b")

	// the device that was detached at the end of the frame still received
	// the end of frame notification
	test.ExpectEquality(t, a.frames, 1)
	test.ExpectEquality(t, a.lastEOF, int64(69888))

	// operations are immediate outside of a frame
	test.ExpectSuccess(t, c.Attach(a))
	test.ExpectEquality(t, c.String(), "b -> a")
}

func TestReadIO(t *testing.T) {
	env := newEnv(t)
	c := bus.NewChain(env)

	a := &device{name: "a", port: bus.PortAddress{Mask: 0x00ff, Bits: 0x001f}, data: 0x01, wait: 1}
	b := &device{name: "b", port: bus.PortAddress{Mask: 0x00ff, Bits: 0x00fd}, data: 0x02, wait: 2}
	d := &device{name: "d", port: bus.PortAddress{Mask: 0x00ff, Bits: 0x00fd}, data: 0x03, clock: bus.MachineCycles}
	test.DemandSuccess(t, c.Attach(a))
	test.DemandSuccess(t, c.Attach(b))
	test.DemandSuccess(t, c.Attach(d))

	tm := bus.Time{Geometry: geom, Frame: 1, TS: coords.Timestamp{Line: 1, Cycle: 1}}

	data, claimed, wait, err := c.ReadIO(0x001f, tm)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, claimed)
	test.ExpectEquality(t, data, 0x01)
	test.ExpectEquality(t, wait, 3)

	// each device sees the time in its own representation
	test.ExpectEquality(t, a.times[0], int64(225))
	test.ExpectEquality(t, d.times[0], int64(69888+225))

	_, claimed, _, err = c.ReadIO(0x0001, tm)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, claimed)

	// the first device to claim the read wins. the double claim is logged
	logger.Clear()
	data, claimed, _, err = c.ReadIO(0x00fd, tm)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, claimed)
	test.ExpectEquality(t, data, 0x02)

	w := &test.CompareWriter{}
	logger.Write(w)
	test.ExpectSuccess(t, w.Contains(fmt.Sprintf(bus.DoubleClaim, 0x00fd, "b", "d")))

	// with strict bus checking a double claim panics
	test.DemandSuccess(t, env.Prefs.StrictBus.Set(true))
	func() {
		defer func() {
			r := recover()
			test.ExpectInequality(t, r, nil)
		}()
		_, _, _, _ = c.ReadIO(0x00fd, tm)
	}()
}

func TestWriteIO(t *testing.T) {
	c := bus.NewChain(newEnv(t))

	a := &device{name: "a", xor: 0xff, wait: 1}
	b := &device{name: "b", wait: 1}
	test.DemandSuccess(t, c.Attach(a))
	test.DemandSuccess(t, c.Attach(b))

	wait, err := c.WriteIO(0x00fe, 0x0f, bus.Time{Geometry: geom})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, wait, 2)
	test.ExpectEquality(t, a.writes[0], 0x0f)
	test.ExpectEquality(t, b.writes[0], 0xf0)

	c.Reset()
	test.ExpectEquality(t, len(a.writes), 0)
}

func TestSnapshot(t *testing.T) {
	c := bus.NewChain(newEnv(t))

	a := &device{name: "a", data: 1}
	b := &device{name: "b", data: 2}
	test.DemandSuccess(t, c.Attach(a))
	test.DemandSuccess(t, c.Attach(b))

	s, err := c.Snapshot()
	test.DemandSuccess(t, err)

	a.data = 10
	b.data = 20
	test.ExpectSuccess(t, c.Plumb(s))
	test.ExpectEquality(t, a.data, 1)
	test.ExpectEquality(t, b.data, 2)

	// failure part way through restores the devices already plumbed
	a.data = 10
	b.data = 20
	b.failUnmarshal = true
	err = c.Plumb(s)
	test.ExpectSuccess(t, curated.Is(err, bus.StateMismatch))
	test.ExpectEquality(t, a.data, 10)
	test.ExpectEquality(t, b.data, 20)

	// the failing device is restored even if it changed before failing
	b.partial = true
	err = c.Plumb(s)
	test.ExpectSuccess(t, curated.Is(err, bus.StateMismatch))
	test.ExpectEquality(t, a.data, 10)
	test.ExpectEquality(t, b.data, 20)

	// state must match the attached devices
	test.DemandSuccess(t, c.Detach("b"))
	err = c.Plumb(s)
	test.ExpectSuccess(t, curated.Is(err, bus.StateMismatch))
}
