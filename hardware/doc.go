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

// Package hardware is the base package for the ZX Spectrum chipset emulation.
// It and its sub-packages contain everything required for a headless
// emulation.
//
// The Machine type is the root of the emulation and contains external
// references to the ULA, the stepping engine and the optional peripherals.
//
// There is no Z80 emulation. The engine executes HALT at a fixed address and
// runs a minimal interrupt routine, which is enough to exercise the
// contention and interrupt timings of the ULA and to animate the display and
// audio of attached media.
//
// The Run() and RunForFrameCount() functions run the emulation one frame at a
// time. A continue check function is called at the end of every frame and
// decides whether the run loop carries on. The check function can pause the
// emulation by returning govern.Paused, in which case the frame is not run
// but the check function continues to be called.
package hardware
