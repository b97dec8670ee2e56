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

// Package audio turns the changes of level recorded during a frame into PCM
// samples.
//
// Every audio source (the EAR and MIC output of the ULA, the EAR input from a
// tape, a bus device) records its changes of level in an EdgeQueue. At the
// end of the frame the Renderer band-limits every queue independently, with
// the blep package, and mixes them into a single mono stream.
//
// The Renderer has no global configuration. Sample rate, gain and turbo mode
// are given in the Config passed to every call of RenderFrame().
package audio
