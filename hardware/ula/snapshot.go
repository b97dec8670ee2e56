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
	"encoding"
	"fmt"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/audio"
	"github.com/jetsetilly/zxchip/hardware/bus"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/video"
)

// IncompatibleState is the curated error pattern returned by Plumb() if the
// state cannot be used with the ULA.
const IncompatibleState = "ula: incompatible state: %v"

// InterceptorState is the serialised state of a PortInterceptor.
type InterceptorState struct {
	Name string
	Data []byte
}

// State is the complete state of the chipset. The state of the Engine is not
// included.
type State struct {
	Model string

	Memory *memory.Memory

	Status Status
	T      int
	End    int
	Frames uint64

	IntAccepted bool
	IntPulse    uint64

	LateTimings bool
	ReadEarMode string
	Keyboard    keyboard.Matrix
	Refresh     uint16

	BorderStart   uint8
	Border        uint8
	BorderChanges []video.BorderChange

	EarMic audio.QueueState
	Audio  audio.RendererState
	Cache  video.Cache

	// the name of the screen layout
	Layout string

	Devices      *bus.State
	Interceptors []InterceptorState
}

// Snapshot returns a copy of the state of the ULA. The copy shares nothing
// with the ULA.
func (ula *ULA) Snapshot() (*State, error) {
	devs, err := ula.chain.Snapshot()
	if err != nil {
		return nil, err
	}

	s := &State{
		Model:       ula.spec.ID,
		Memory:      ula.mem.Snapshot(),
		Status:      ula.status,
		T:           ula.t,
		End:         ula.end,
		Frames:      ula.frames,
		IntAccepted: ula.intAccepted,
		IntPulse:    ula.intPulse,
		LateTimings: ula.lateTimings,
		ReadEarMode: ula.readEarMode,
		Keyboard:    ula.keyboard,
		Refresh:     ula.refresh,
		BorderStart: ula.borderStart,
		Border:      ula.border,
		EarMic:      ula.earmic.State(),
		Audio:       ula.audio.State(),
		Cache:       ula.cache,
		Layout:      ula.layout.String(),
		Devices:     devs,
	}

	s.BorderChanges = make([]video.BorderChange, len(ula.borderChanges))
	copy(s.BorderChanges, ula.borderChanges)

	for _, pi := range ula.interceptors {
		is := InterceptorState{Name: pi.Name()}
		if m, ok := pi.(encoding.BinaryMarshaler); ok {
			is.Data, err = m.MarshalBinary()
			if err != nil {
				return nil, curated.Errorf(IncompatibleState, err)
			}
		}
		s.Interceptors = append(s.Interceptors, is)
	}

	return s, nil
}

// Plumb restores a state created by Snapshot(). Either the entire state is
// restored or, if an error is returned, none of it is.
//
// The state must have been created by a ULA of the same model, with the same
// devices and the same interceptors installed.
func (ula *ULA) Plumb(s *State) error {
	if s == nil {
		return curated.Errorf(IncompatibleState, "nil state")
	}
	if s.Model != ula.spec.ID {
		return curated.Errorf(IncompatibleState, fmt.Sprintf("state is for %s not %s", s.Model, ula.spec.ID))
	}
	if s.Memory == nil || !ula.mem.Compatible(s.Memory) {
		return curated.Errorf(IncompatibleState, "memory")
	}
	if s.T < 0 || s.T >= ula.eof*2 {
		return curated.Errorf(IncompatibleState, fmt.Sprintf("cycle %d is outside of the frame", s.T))
	}
	if len(s.Interceptors) != len(ula.interceptors) {
		return curated.Errorf(IncompatibleState, "interceptors")
	}
	for i, pi := range ula.interceptors {
		if pi.Name() != s.Interceptors[i].Name {
			return curated.Errorf(IncompatibleState, fmt.Sprintf("expected interceptor %s", pi.Name()))
		}
	}
	layout, err := video.LookupLayout(s.Layout)
	if err != nil {
		return curated.Errorf(IncompatibleState, err)
	}

	devs := s.Devices
	if devs == nil {
		devs = &bus.State{}
	}

	// the fallible parts first. the chain restores itself on failure
	undo, err := ula.Snapshot()
	if err != nil {
		return err
	}
	if err := ula.chain.Plumb(devs); err != nil {
		return err
	}
	for i, pi := range ula.interceptors {
		u, ok := pi.(encoding.BinaryUnmarshaler)
		if !ok || s.Interceptors[i].Data == nil {
			continue
		}
		if err := u.UnmarshalBinary(s.Interceptors[i].Data); err != nil {
			ula.restoreInterceptors(undo, i+1)
			_ = ula.chain.Plumb(undo.Devices)
			return curated.Errorf(IncompatibleState, fmt.Errorf("%s: %w", pi.Name(), err))
		}
	}

	if err := ula.mem.Plumb(s.Memory); err != nil {
		ula.restoreInterceptors(undo, len(ula.interceptors))
		_ = ula.chain.Plumb(undo.Devices)
		return err
	}

	ula.status = s.Status
	ula.t = s.T
	ula.end = s.End
	ula.frames = s.Frames
	ula.intAccepted = s.IntAccepted
	ula.intPulse = s.IntPulse
	ula.lateTimings = s.LateTimings
	ula.readEarMode = s.ReadEarMode
	ula.keyboard = s.Keyboard
	ula.refresh = s.Refresh
	ula.borderStart = s.BorderStart
	ula.border = s.Border
	ula.borderChanges = append(ula.borderChanges[:0], s.BorderChanges...)
	ula.earmic.Plumb(s.EarMic)
	ula.audio.Plumb(s.Audio)
	ula.cache = s.Cache
	ula.layout = layout
	ula.cache.Invalidate()
	ula.renderer.Invalidate()
	ula.err = nil

	return nil
}

// unmarshal the first n interceptors from the undo state. the interceptor
// that failed is included because it may have changed before failing.
func (ula *ULA) restoreInterceptors(undo *State, n int) {
	for j := 0; j < n; j++ {
		if u, ok := ula.interceptors[j].(encoding.BinaryUnmarshaler); ok && undo.Interceptors[j].Data != nil {
			_ = u.UnmarshalBinary(undo.Interceptors[j].Data)
		}
	}
}
