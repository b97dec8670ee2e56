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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The pattern string
// given to Errorf() is remembered and used to identify the error with the Is()
// and Has() functions:
//
//	const TimingViolation = "timing: %v"
//
//	err := curated.Errorf(TimingViolation, "linear cycle out of range")
//	if curated.Is(err, TimingViolation) {
//		...
//	}
//
// Has() searches the entire chain of wrapped errors. A chain is created by
// passing an error as one of the values to Errorf(). Errors created by the
// fmt package with the %w verb are also followed.
//
// The Error() function removes adjacent duplicate parts of the message chain.
// For example:
//
//	a := curated.Errorf("bus: %v", "unknown device")
//	b := curated.Errorf("bus: %v", a)
//
// b.Error() will return "bus: unknown device" and not
// "bus: bus: unknown device".
package curated
