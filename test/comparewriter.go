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

package test

import "strings"

// CompareWriter collects everything written to it so that it can be checked
// against the output a test expects. The zero value is ready to use.
type CompareWriter struct {
	strings.Builder
}

// Clear empties the collected output.
func (w *CompareWriter) Clear() {
	w.Reset()
}

// Compare returns true if the collected output is exactly s.
func (w *CompareWriter) Compare(s string) bool {
	return w.String() == s
}

// Contains returns true if s appears anywhere in the collected output.
func (w *CompareWriter) Contains(s string) bool {
	return strings.Contains(w.String(), s)
}
