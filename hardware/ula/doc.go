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

// Package ula is the chipset core. The ULA owns the memory, the chain of bus
// devices and the clock of the emulated machine.
//
// The CPU is not part of the package. Instead, an Engine is driven by the
// RunFrame() function and the Engine requests every cycle of every instruction
// through the CycleBus interface, which the ULA implements. The ULA adds the
// contention delay, performs the access and advances the frame clock.
//
//	ula, _ := ula.NewULA(env, &specification.Spec48K)
//	for {
//		if err := ula.RunFrame(engine); err != nil {
//			return err
//		}
//		img := ula.Render()
//		pcm := ula.RenderAudio(cfg)
//	}
//
// A frame ends at the first instruction boundary at or after the end of the
// frame. The time by which the final instruction overran the frame is carried
// into the next frame.
//
// Requests to attach or detach devices made while a frame is running are
// deferred until the end of the frame. Other changes requested by the host
// can be deferred with QueueHost().
//
// Chipset variants are created by wrapping the ULA. A wrapper installs a
// PortInterceptor to see I/O accesses before the ULA and can replace the
// video Layout and Colours. See the variants packages.
package ula
