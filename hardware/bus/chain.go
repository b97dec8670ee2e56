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

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/logger"
)

// Sentinal error patterns.
const (
	UnknownDevice   = "bus: unknown device (%s)"
	DuplicateDevice = "bus: duplicate device (%s)"
	DoubleClaim     = "bus: read of port %#04x claimed by %s and %s"
	StateMismatch   = "bus: state mismatch: %v"
)

// a node in the chain arena. the next field is the index of the next node or
// -1 if this is the last node.
type node struct {
	dev  Device
	next int
}

// a deferred attach or detach operation.
type operation struct {
	attach Device
	detach string
}

// Chain is the ordered list of devices attached to the I/O address space.
type Chain struct {
	env *environment.Environment

	nodes []node
	head  int
	tail  int
	free  []int

	// attach and detach operations are deferred while a frame is running
	running bool
	pending []operation
}

// NewChain is the preferred method of initialisation for the Chain type.
func NewChain(env *environment.Environment) *Chain {
	return &Chain{
		env:  env,
		head: -1,
		tail: -1,
	}
}

func (c *Chain) String() string {
	return strings.Join(c.Names(), " -> ")
}

// Names returns the names of the attached devices in chain order.
func (c *Chain) Names() []string {
	var n []string
	for i := c.head; i != -1; i = c.nodes[i].next {
		n = append(n, c.nodes[i].dev.Name())
	}
	return n
}

// Devices returns the attached devices in chain order.
func (c *Chain) Devices() []Device {
	var d []Device
	for i := c.head; i != -1; i = c.nodes[i].next {
		d = append(d, c.nodes[i].dev)
	}
	return d
}

// Lookup returns the named device.
func (c *Chain) Lookup(name string) (Device, bool) {
	for i := c.head; i != -1; i = c.nodes[i].next {
		if c.nodes[i].dev.Name() == name {
			return c.nodes[i].dev, true
		}
	}
	return nil, false
}

// whether the named device will be attached once all pending operations have
// been applied.
func (c *Chain) projected(name string) bool {
	_, ok := c.Lookup(name)
	for _, op := range c.pending {
		if op.attach != nil && op.attach.Name() == name {
			ok = true
		}
		if op.detach == name {
			ok = false
		}
	}
	return ok
}

// Attach a device to the end of the chain. If a frame is running the attach
// is deferred until the end of the frame.
func (c *Chain) Attach(dev Device) error {
	if c.projected(dev.Name()) {
		return curated.Errorf(DuplicateDevice, dev.Name())
	}
	if c.running {
		c.pending = append(c.pending, operation{attach: dev})
		logger.Logf(c.env, "bus", "attach of %s deferred until end of frame", dev.Name())
		return nil
	}
	c.attach(dev)
	return nil
}

// Detach the named device from the chain. If a frame is running the detach
// is deferred until the end of the frame.
func (c *Chain) Detach(name string) error {
	if !c.projected(name) {
		return curated.Errorf(UnknownDevice, name)
	}
	if c.running {
		c.pending = append(c.pending, operation{detach: name})
		logger.Logf(c.env, "bus", "detach of %s deferred until end of frame", name)
		return nil
	}
	c.detach(name)
	return nil
}

func (c *Chain) attach(dev Device) {
	n := node{dev: dev, next: -1}

	var idx int
	if len(c.free) > 0 {
		idx = c.free[len(c.free)-1]
		c.free = c.free[:len(c.free)-1]
		c.nodes[idx] = n
	} else {
		idx = len(c.nodes)
		c.nodes = append(c.nodes, n)
	}

	if c.tail == -1 {
		c.head = idx
	} else {
		c.nodes[c.tail].next = idx
	}
	c.tail = idx

	logger.Logf(c.env, "bus", "attached %s", dev.Name())
}

func (c *Chain) detach(name string) {
	prev := -1
	for i := c.head; i != -1; i = c.nodes[i].next {
		if c.nodes[i].dev.Name() != name {
			prev = i
			continue
		}

		if prev == -1 {
			c.head = c.nodes[i].next
		} else {
			c.nodes[prev].next = c.nodes[i].next
		}
		if c.tail == i {
			c.tail = prev
		}

		c.nodes[i] = node{next: -1}
		c.free = append(c.free, i)

		logger.Logf(c.env, "bus", "detached %s", name)
		return
	}
}

// Begin is called by the ULA at the start of a frame. Attach and detach
// operations are deferred until NextFrame() is called.
func (c *Chain) Begin() {
	c.running = true
}

// NextFrame calls the NextFrame() function of every device in chain order and
// then applies any deferred attach and detach operations.
func (c *Chain) NextFrame(eof Time) error {
	for i := c.head; i != -1; i = c.nodes[i].next {
		dev := c.nodes[i].dev
		local, err := Convert(eof, dev.Clock())
		if err != nil {
			return err
		}
		dev.NextFrame(local)
	}

	c.running = false
	for _, op := range c.pending {
		if op.attach != nil {
			c.attach(op.attach)
		} else {
			c.detach(op.detach)
		}
	}
	c.pending = c.pending[:0]

	return nil
}

// Reset every device in the chain.
func (c *Chain) Reset() {
	for i := c.head; i != -1; i = c.nodes[i].next {
		c.nodes[i].dev.Reset()
	}
}

// AdvanceTo brings every device up to date with the reference time.
func (c *Chain) AdvanceTo(t Time) error {
	for i := c.head; i != -1; i = c.nodes[i].next {
		dev := c.nodes[i].dev
		local, err := Convert(t, dev.Clock())
		if err != nil {
			return err
		}
		dev.AdvanceTo(local)
	}
	return nil
}

// ReadIO offers the read to every device in chain order. The first device to
// claim the read supplies the data. Wait states from every device are summed.
func (c *Chain) ReadIO(port uint16, t Time) (data uint8, claimed bool, wait int, err error) {
	var claimant Device

	for i := c.head; i != -1; i = c.nodes[i].next {
		dev := c.nodes[i].dev
		local, err := Convert(t, dev.Clock())
		if err != nil {
			return 0, false, 0, err
		}

		d, ok, w := dev.ReadIO(port, local)
		wait += w
		if !ok {
			continue
		}

		if claimant != nil {
			err := curated.Errorf(DoubleClaim, port, claimant.Name(), dev.Name())
			if c.env.Prefs.StrictBus.Get().(bool) {
				panic(err)
			}
			logger.Log(c.env, "bus", err)
			continue
		}

		claimant = dev
		data = d
		claimed = true
	}

	return data, claimed, wait, nil
}

// WriteIO offers the write to every device in chain order. Each device sees
// the data as forwarded by the previous device. Wait states from every device
// are summed.
func (c *Chain) WriteIO(port uint16, data uint8, t Time) (wait int, err error) {
	for i := c.head; i != -1; i = c.nodes[i].next {
		dev := c.nodes[i].dev
		local, err := Convert(t, dev.Clock())
		if err != nil {
			return 0, err
		}

		var w int
		data, w = dev.WriteIO(port, data, local)
		wait += w
	}
	return wait, nil
}

// DeviceState is the serialised state of a single device.
type DeviceState struct {
	Name string
	Data []byte
}

// State is the serialised state of every device in the chain.
type State struct {
	Devices []DeviceState
}

// Snapshot serialises the state of every device. Devices that do not
// implement encoding.BinaryMarshaler are recorded by name only.
func (c *Chain) Snapshot() (*State, error) {
	s := &State{}
	for i := c.head; i != -1; i = c.nodes[i].next {
		dev := c.nodes[i].dev
		ds := DeviceState{Name: dev.Name()}
		if m, ok := dev.(encoding.BinaryMarshaler); ok {
			d, err := m.MarshalBinary()
			if err != nil {
				return nil, curated.Errorf(StateMismatch, err)
			}
			ds.Data = d
		}
		s.Devices = append(s.Devices, ds)
	}
	return s, nil
}

// Plumb restores the state of every device. The names of the devices in the
// state must match the attached devices exactly. If the state of any device
// cannot be restored then the state of every device, including the failing
// device, is returned to how it was before the call.
func (c *Chain) Plumb(s *State) error {
	devs := c.Devices()
	if len(devs) != len(s.Devices) {
		return curated.Errorf(StateMismatch, fmt.Sprintf("%d devices in state, %d attached", len(s.Devices), len(devs)))
	}
	for i := range devs {
		if devs[i].Name() != s.Devices[i].Name {
			return curated.Errorf(StateMismatch, fmt.Sprintf("expected %s, state has %s", devs[i].Name(), s.Devices[i].Name))
		}
	}

	undo, err := c.Snapshot()
	if err != nil {
		return err
	}

	for i := range devs {
		u, ok := devs[i].(encoding.BinaryUnmarshaler)
		if !ok || s.Devices[i].Data == nil {
			continue
		}
		if err := u.UnmarshalBinary(s.Devices[i].Data); err != nil {
			for j := 0; j <= i; j++ {
				if u, ok := devs[j].(encoding.BinaryUnmarshaler); ok && undo.Devices[j].Data != nil {
					_ = u.UnmarshalBinary(undo.Devices[j].Data)
				}
			}
			return curated.Errorf(StateMismatch, fmt.Errorf("%s: %w", devs[i].Name(), err))
		}
	}

	return nil
}
