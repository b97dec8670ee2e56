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

package keyboard

import (
	"strings"
)

// keys on a host keyboard that have no single equivalent. the names are
// those used by SDL, upper cased
var hostKeys = map[string][]Key{
	"RETURN":      {Enter},
	"LEFT SHIFT":  {CapsShift},
	"RIGHT SHIFT": {SymbolShift},
	"LEFT CTRL":   {SymbolShift},
	"RIGHT CTRL":  {SymbolShift},
	"BACKSPACE":   {CapsShift, N0},
	"ESCAPE":      {CapsShift, Space},
	"LEFT":        {CapsShift, N5},
	"DOWN":        {CapsShift, N6},
	"UP":          {CapsShift, N7},
	"RIGHT":       {CapsShift, N8},
	",":           {SymbolShift, N},
	".":           {SymbolShift, M},
	"/":           {SymbolShift, V},
	";":           {SymbolShift, O},
	"'":           {SymbolShift, N7},
	"-":           {SymbolShift, J},
	"=":           {SymbolShift, L},
}

// HostKeys returns the keys that should be pressed for the named host key.
// The name can be the name of a key as accepted by ParseKey() or one of a
// small number of host key names, such as BACKSPACE.
func HostKeys(name string) ([]Key, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if ks, ok := hostKeys[name]; ok {
		return ks, true
	}
	if k, err := ParseKey(name); err == nil {
		return []Key{k}, true
	}
	return nil, false
}

// Host tracks the keys held down on a host keyboard and presents them as a
// Matrix. More than one host key can press the same key on the matrix. The
// key is only released when all of the host keys have been released.
//
// The zero value is ready to use.
type Host struct {
	held map[string][]Key
}

// Press the named host key. Returns false if the name has no mapping.
func (h *Host) Press(name string) bool {
	ks, ok := HostKeys(name)
	if !ok {
		return false
	}
	if h.held == nil {
		h.held = make(map[string][]Key)
	}
	h.held[strings.ToUpper(strings.TrimSpace(name))] = ks
	return true
}

// Release the named host key.
func (h *Host) Release(name string) {
	delete(h.held, strings.ToUpper(strings.TrimSpace(name)))
}

// ReleaseAll releases every host key.
func (h *Host) ReleaseAll() {
	h.held = nil
}

// Matrix returns the state of the keyboard matrix.
func (h *Host) Matrix() Matrix {
	var m Matrix
	for _, ks := range h.held {
		for _, k := range ks {
			m.Press(k)
		}
	}
	return m
}
