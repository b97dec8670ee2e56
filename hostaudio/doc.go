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

// Package hostaudio hands the audio produced by the emulation to the audio
// device of the host.
//
// The emulation produces a buffer of samples at the end of every frame. The
// buffer is passed to Carousel.Queue() and ownership of the buffer passes to
// the Carousel. The audio device takes samples with Pull() or Read(), usually
// from a real-time callback running in another goroutine.
//
// The Carousel holds a small number of frames. When it is full Queue() blocks
// until the device has taken a frame, which keeps the emulation running at
// the speed of the audio device. In turbo mode a full Carousel drops the new
// frame instead.
//
// The sdlaudio and otoaudio packages connect a Carousel to an audio device.
package hostaudio
