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
	"fmt"
	"sync"

	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/hardware/audio"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/contention"
	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/preferences"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hardware/video"
	"github.com/jetsetilly/zxchip/logger"
)

// Status of the frame loop.
type Status int

// List of valid Status values.
const (
	// the frame is being run. the initial state
	Running Status = iota

	// the frame has ended. the next call to RunFrame() will start the next
	// frame
	FrameComplete
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case FrameComplete:
		return "frame complete"
	}
	return "unknown status"
}

// the ULA port is any even port.
var ulaPort = bus.PortAddress{Mask: 0x0001, Bits: 0x0000}

// the 128K paging register and the two paging registers of the +3.
var (
	pagingPort      = bus.PortAddress{Mask: 0x8002, Bits: 0x0000}
	plus3PagingPort = bus.PortAddress{Mask: 0xc002, Bits: 0x4000}
	plus3ExtPort    = bus.PortAddress{Mask: 0xf002, Bits: 0x1000}
)

// Decoding controls how the ULA responds to I/O and memory accesses. Chipset
// variants change the decoding to match their hardware.
type Decoding struct {
	// the ports decoded as the ULA port
	ULAPort bus.PortAddress

	// the value read from the ULA port is masked with ReadMask
	ReadMask uint8

	// unclaimed reads of ports that are not the ULA port return the value on
	// the floating bus. if false they return 0xff
	FloatingBus bool

	// refresh cycles in contended memory disturb the display fetch
	Snow bool
}

// DefaultDecoding is the decoding of the original machines.
var DefaultDecoding = Decoding{
	ULAPort:     ulaPort,
	ReadMask:    0xff,
	FloatingBus: true,
	Snow:        true,
}

// SpecDecoding returns DefaultDecoding adjusted for the floating bus and
// snow behaviour of the model.
func SpecDecoding(spec *specification.Spec) Decoding {
	d := DefaultDecoding
	d.FloatingBus = spec.FloatingBus
	d.Snow = spec.Snow
	return d
}

// ULA is the chipset core.
type ULA struct {
	env  *environment.Environment
	spec *specification.Spec

	mem    *memory.Memory
	chain  *bus.Chain
	window *contention.Window

	decoding     Decoding
	interceptors []PortInterceptor
	intMask      InterruptMask

	status Status

	// the current time. t is the number of cycles since the start of the
	// frame and can be larger than the length of the frame once the frame has
	// ended
	t      int
	eof    int
	frames uint64

	// the value of t when the most recent frame ended
	end int

	// the frame number of the most recently accepted interrupt pulse
	intAccepted bool
	intPulse    uint64

	lateTimings bool
	readEarMode string

	keyboard keyboard.Matrix
	refresh  uint16

	// border colour at the start of the frame, the current border colour and
	// the changes made during the frame
	borderStart   uint8
	border        uint8
	borderChanges []video.BorderChange

	earmic *audio.EdgeQueue

	cache    video.Cache
	layout   video.Layout
	renderer *video.Renderer
	audio    *audio.Renderer

	// the first error encountered during a cycle. the frame is aborted at
	// the end of the instruction
	err error

	// paging register has been written to while locked
	lockLogged bool

	// host requests deferred until the end of the frame
	hostCrit sync.Mutex
	host     []func()
}

// NewULA is the preferred method of initialisation for the ULA type.
func NewULA(env *environment.Environment, spec *specification.Spec) (*ULA, error) {
	if env == nil {
		var err error
		env, err = environment.NewEnvironment(environment.MainEmulation, nil)
		if err != nil {
			return nil, err
		}
	}

	border, err := video.ParseBorderSize(env.Prefs.BorderSize.String())
	if err != nil {
		return nil, err
	}

	ula := &ULA{
		env:         env,
		spec:        spec,
		mem:         memory.NewMemory(spec),
		chain:       bus.NewChain(env),
		window:      contention.NewWindow(spec),
		decoding:    SpecDecoding(spec),
		eof:         spec.EOF(),
		lateTimings: env.Prefs.LateTimings.Get().(bool),
		readEarMode: env.Prefs.ReadEarMode.String(),
		earmic:      audio.NewEdgeQueue(audio.AmpsEarMic),
		layout:      video.Standard,
		renderer:    video.NewRenderer(spec, nil, border),
		audio:       audio.NewRenderer(spec),
	}

	env.Random.SetSource(ula)

	ula.Reset(true)

	return ula, nil
}

func (ula *ULA) String() string {
	return fmt.Sprintf("%s: frame %d %s", ula.spec.ID, ula.frames, ula.Now())
}

// Reset the chipset. A soft reset only resets the paging registers. A hard
// reset also clears RAM, resets every bus device and returns the clock to the
// start of the first frame.
//
// The Engine is not reset by this function.
func (ula *ULA) Reset(hard bool) {
	ula.mem.Reset()
	if !hard {
		return
	}

	if ula.env.Prefs.RandomState.Get().(bool) {
		ula.mem.Clear(ula.env.Random.Fill)
	} else {
		ula.mem.Clear(nil)
	}

	ula.chain.Reset()

	ula.status = Running
	ula.t = 0
	ula.end = 0
	ula.frames = 0
	ula.intAccepted = false
	ula.intPulse = 0
	ula.refresh = 0
	ula.err = nil
	ula.border = 0
	ula.borderStart = 0
	ula.borderChanges = ula.borderChanges[:0]
	ula.earmic.Reset()
	ula.cache.Reset()
	ula.layout = video.Standard
	ula.renderer.Invalidate()
	ula.audio.Reset()

	for _, pi := range ula.interceptors {
		if r, ok := pi.(Resetter); ok {
			r.Reset()
		}
	}
}

// Spec returns the specification of the machine model.
func (ula *ULA) Spec() *specification.Spec {
	return ula.spec
}

// Memory returns the memory of the machine.
func (ula *ULA) Memory() *memory.Memory {
	return ula.mem
}

// Chain returns the chain of bus devices.
func (ula *ULA) Chain() *bus.Chain {
	return ula.chain
}

// Env returns the environment the ULA was created with.
func (ula *ULA) Env() *environment.Environment {
	return ula.env
}

// Status returns the status of the frame loop.
func (ula *ULA) Status() Status {
	return ula.status
}

// Frames returns the number of completed frames since the last hard reset.
// The frame that has just completed is not counted until the next frame
// begins.
func (ula *ULA) Frames() uint64 {
	return ula.frames
}

// Cycle returns the number of cycles since the start of the frame.
func (ula *ULA) Cycle() int {
	return ula.t
}

// Ticks returns the number of cycles since the last hard reset. Implements the
// random.Source interface.
func (ula *ULA) Ticks() uint64 {
	return ula.frames*uint64(ula.eof) + uint64(ula.t)
}

// Border returns the current border colour.
func (ula *ULA) Border() uint8 {
	return ula.border
}

// SetKeyboard changes the state of the keyboard.
func (ula *ULA) SetKeyboard(m keyboard.Matrix) {
	ula.keyboard = m
}

// Keyboard returns the state of the keyboard.
func (ula *ULA) Keyboard() keyboard.Matrix {
	return ula.keyboard
}

// SetLateTimings moves the interrupt one cycle earlier, as found on some
// machines.
func (ula *ULA) SetLateTimings(late bool) {
	ula.lateTimings = late
}

// LateTimings returns true if late timings are being used.
func (ula *ULA) LateTimings() bool {
	return ula.lateTimings
}

// SetReadEarMode changes how the EAR input is read when there is no device
// driving it. Valid values are listed in preferences.ReadEarModes.
func (ula *ULA) SetReadEarMode(mode string) {
	ula.readEarMode = mode
}

// the current time in the shared reference representation.
func (ula *ULA) busTime(t int) bus.Time {
	return bus.Time{
		Geometry: ula.spec.Geometry,
		Frame:    ula.frames,
		TS:       ula.spec.Geometry.FromLinear(t),
	}
}

// Now implements the CycleBus interface.
func (ula *ULA) Now() coords.Timestamp {
	return ula.spec.Geometry.FromLinear(ula.t)
}

// EarMic returns the queue of changes to the EAR and MIC outputs during the
// current frame.
func (ula *ULA) EarMic() *audio.EdgeQueue {
	return ula.earmic
}

// the level of the EAR input when no device is driving it.
func (ula *ULA) earInDefault() bool {
	switch ula.readEarMode {
	case preferences.ReadEarIssue2:
		return ula.earmic.Level() != 0
	case preferences.ReadEarClear:
		return false
	}
	return ula.earmic.Level()&0x02 == 0x02
}

// the level of the EAR input at time t. the first device in the chain that
// implements bus.EarSource drives the input.
func (ula *ULA) earIn(t int) bool {
	for _, dev := range ula.chain.Devices() {
		if src, ok := dev.(bus.EarSource); ok {
			local, err := bus.Convert(ula.busTime(t), dev.Clock())
			if err != nil {
				ula.fault(err)
				return false
			}
			return src.EarIn(local)
		}
	}
	return ula.earInDefault()
}

// record the first error of the frame.
func (ula *ULA) fault(err error) {
	if ula.err == nil {
		ula.err = err
		logger.Log(ula.env, "ula", err)
	}
}
