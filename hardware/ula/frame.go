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

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/coords"
	"github.com/jetsetilly/zxchip/logger"
)

// the length of the interrupt pulse in cycles.
const intLength = 32

// RunFrame runs the Engine until the end of the frame. If the previous frame
// has completed then the ULA first moves onto the next frame.
//
// If an error occurs the frame is aborted and the error is returned. The
// frame can be continued by calling RunFrame() again.
func (ula *ULA) RunFrame(engine Engine) error {
	if ula.status == FrameComplete {
		ula.nextFrame()
	}

	ula.chain.Begin()

	for ula.t < ula.eof {
		ula.interrupt(engine)

		if err := engine.Step(ula); err != nil {
			ula.fault(err)
		}

		if ula.t >= ula.eof*2 {
			ula.fault(curated.Errorf(coords.TimingViolation, fmt.Sprintf("instruction ended at cycle %d", ula.t)))
		}

		if ula.err != nil {
			err := ula.err
			ula.err = nil
			logger.Logf(ula.env, "ula", "frame %d aborted at %s", ula.frames, ula.Now())
			return err
		}
	}

	return ula.complete()
}

// raise the interrupt if the interrupt pulse is active and it has not already
// been accepted.
func (ula *ULA) interrupt(engine Engine) {
	t := ula.t
	if ula.lateTimings {
		t++
	}

	// the pulse belongs to the frame in which it starts
	pulse := ula.frames
	if t >= ula.eof {
		t -= ula.eof
		pulse++
	}

	if t >= intLength {
		return
	}
	if ula.intAccepted && ula.intPulse == pulse {
		return
	}
	if ula.intMask != nil && ula.intMask() {
		return
	}

	if engine.Interrupt(ula) {
		ula.intAccepted = true
		ula.intPulse = pulse
	}
}

// InterruptActive returns true if the interrupt line is active at the current
// time. The interrupt mask and whether the interrupt has been accepted are not
// considered.
func (ula *ULA) InterruptActive() bool {
	t := ula.t
	if ula.lateTimings {
		t++
	}
	return t%ula.eof < intLength
}

// complete the frame.
func (ula *ULA) complete() error {
	ula.status = FrameComplete
	ula.end = ula.t

	eof := bus.Time{
		Geometry: ula.spec.Geometry,
		Frame:    ula.frames,
		TS:       ula.spec.Geometry.FromLinear(ula.eof),
	}
	if err := ula.chain.AdvanceTo(eof); err != nil {
		return err
	}
	if err := ula.chain.NextFrame(eof); err != nil {
		return err
	}

	ula.hostCrit.Lock()
	host := ula.host
	ula.host = nil
	ula.hostCrit.Unlock()

	for _, f := range host {
		f()
	}

	return nil
}

// move onto the next frame. state that only makes sense for the completed
// frame is discarded.
func (ula *ULA) nextFrame() {
	ula.t -= ula.eof
	ula.frames++

	ula.borderStart = ula.border
	ula.borderChanges = ula.borderChanges[:0]

	ula.earmic.NextFrame()
	for _, dev := range ula.chain.Devices() {
		if src, ok := dev.(bus.AudioSource); ok {
			src.AudioEdges().NextFrame()
		}
	}

	ula.cache.NextFrame()

	for _, l := range ula.frameListeners() {
		l.NextFrame()
	}

	ula.lockLogged = false
	ula.status = Running
}

// the installed interceptors and colours that implement FrameListener. each
// listener appears once even if it is installed as both.
func (ula *ULA) frameListeners() []FrameListener {
	var ls []FrameListener
	add := func(v any) {
		l, ok := v.(FrameListener)
		if !ok {
			return
		}
		for _, e := range ls {
			if e == l {
				return
			}
		}
		ls = append(ls, l)
	}
	for _, pi := range ula.interceptors {
		add(pi)
	}
	add(ula.renderer.Colours())
	return ls
}
