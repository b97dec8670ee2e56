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

// Package video produces the image of a frame from the state recorded by the
// ULA while the frame was running.
//
// The ULA fetches display bytes from memory as the beam moves down the screen.
// A program that writes to screen memory after the beam has passed expects the
// old value to be displayed for the rest of the frame. The Cache records the
// bytes that were actually fetched for any cell that was written to after it
// had been fetched (the cell is "frozen"). Cells that were not written to after
// being fetched are read directly from memory when the frame is rendered.
//
// The Cache also records which lines have changed since the last render. The
// Renderer only recomputes the pixels of changed lines. The border is always
// drawn from the list of timestamped border changes.
//
// How screen memory is organised is decided by the Layout and how attributes
// become colours is decided by the Colours. Both are strategies that can be
// replaced by chipset variants.
package video
