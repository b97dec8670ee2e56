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

// Package clocks defines the constant values that define the speed of the CPU
// clock in the supported machines. Values are in MHz.
//
// The audio renderer uses these values to convert cycle timestamps into sample
// positions.
package clocks

const (
	// ZX Spectrum 16K/48K (PAL and NTSC use the same crystal divider).
	ZX48 = 3.5

	// ZX Spectrum 128K/+2.
	ZX128 = 3.5469

	// ZX Spectrum +2A/+3.
	Plus3 = 3.5469

	// Timex TC2048.
	TC2048 = 3.5
)

// Hz converts a MHz value to Hz.
func Hz(mhz float64) float64 {
	return mhz * 1000000
}
