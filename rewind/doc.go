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

// Package rewind keeps a history of Machine states so that the emulation can
// be returned to an earlier frame.
//
// Record() should be called at the end of every frame. Every nth frame is
// snapshotted, where n is the frequency given to NewRewind(). GotoFrame()
// plumbs in the nearest earlier snapshot and then runs the emulation forward
// to the requested frame.
//
// Recording a frame that is earlier than the most recent entry, which will
// happen after GotoFrame(), removes all the entries that come after it.
package rewind
