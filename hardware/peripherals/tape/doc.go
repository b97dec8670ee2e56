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

// Package tape implements a tape player that drives the EAR input of the ULA.
//
// Tapes are recordings of the audio signal in WAV or MP3 format. The
// recording is converted into a list of pulses by a slicer with hysteresis
// (a Schmitt trigger). The duration of each pulse is measured in CPU cycles.
//
// The Player type is a bus.Device. It claims no ports but implements the
// bus.EarSource interface, so the ULA reads the level of the tape when the
// ULA port is read, and the bus.AudioSource interface, so the sound of the
// tape is heard.
package tape
