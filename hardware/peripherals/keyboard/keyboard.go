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

// Package keyboard implements the key matrix of the ZX Spectrum. The matrix is
// read by the ULA on every read of the ULA port.
//
// The 40 keys are arranged in eight half-rows of five keys. A half-row is
// selected when the corresponding bit of the high byte of the port address is
// zero. Pressed keys read as zero.
package keyboard

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
)

// UnknownKey is the curated error pattern returned by ParseKey().
const UnknownKey = "keyboard: unknown key (%s)"

// Key identifies a key in the matrix. The upper nibble is the half-row and the
// lower nibble is the bit within the half-row.
type Key uint8

// NewKey creates a Key for the half-row and bit.
func NewKey(row int, bit int) Key {
	return Key(row<<4 | bit)
}

// Row returns the half-row of the key.
func (k Key) Row() int {
	return int(k >> 4)
}

// Bit returns the bit of the key in the half-row.
func (k Key) Bit() int {
	return int(k & 0x0f)
}

func (k Key) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("key(%d,%d)", k.Row(), k.Bit())
}

// List of keys. The order within each half-row is the order of the bits,
// starting with bit zero.
const (
	CapsShift Key = 0x00
	Z         Key = 0x01
	X         Key = 0x02
	C         Key = 0x03
	V         Key = 0x04

	A Key = 0x10
	S Key = 0x11
	D Key = 0x12
	F Key = 0x13
	G Key = 0x14

	Q Key = 0x20
	W Key = 0x21
	E Key = 0x22
	R Key = 0x23
	T Key = 0x24

	N1 Key = 0x30
	N2 Key = 0x31
	N3 Key = 0x32
	N4 Key = 0x33
	N5 Key = 0x34

	N0 Key = 0x40
	N9 Key = 0x41
	N8 Key = 0x42
	N7 Key = 0x43
	N6 Key = 0x44

	P Key = 0x50
	O Key = 0x51
	I Key = 0x52
	U Key = 0x53
	Y Key = 0x54

	Enter Key = 0x60
	L     Key = 0x61
	K     Key = 0x62
	J     Key = 0x63
	H     Key = 0x64

	Space       Key = 0x70
	SymbolShift Key = 0x71
	M           Key = 0x72
	N           Key = 0x73
	B           Key = 0x74
)

var names = map[Key]string{
	CapsShift: "CAPS", Z: "Z", X: "X", C: "C", V: "V",
	A: "A", S: "S", D: "D", F: "F", G: "G",
	Q: "Q", W: "W", E: "E", R: "R", T: "T",
	N1: "1", N2: "2", N3: "3", N4: "4", N5: "5",
	N0: "0", N9: "9", N8: "8", N7: "7", N6: "6",
	P: "P", O: "O", I: "I", U: "U", Y: "Y",
	Enter: "ENTER", L: "L", K: "K", J: "J", H: "H",
	Space: "SPACE", SymbolShift: "SYMBOL", M: "M", N: "N", B: "B",
}

// ParseKey returns the key with the name. Names are the legends on the keys,
// plus CAPS, SYMBOL, ENTER and SPACE. Case is ignored.
func ParseKey(name string) (Key, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k, n := range names {
		if n == name {
			return k, nil
		}
	}
	return 0, curated.Errorf(UnknownKey, name)
}

// Matrix is the state of every key. A set bit means the key is pressed. The
// zero value is a matrix with no keys pressed.
type Matrix [8]uint8

func (m Matrix) String() string {
	var s []string
	for row := range m {
		for bit := 0; bit < 5; bit++ {
			if m[row]&(1<<bit) != 0 {
				s = append(s, NewKey(row, bit).String())
			}
		}
	}
	if len(s) == 0 {
		return "no keys"
	}
	return strings.Join(s, "+")
}

// Press the key.
func (m *Matrix) Press(k Key) {
	m[k.Row()&7] |= 1 << k.Bit()
}

// Release the key.
func (m *Matrix) Release(k Key) {
	m[k.Row()&7] &^= 1 << k.Bit()
}

// Set presses or releases the key.
func (m *Matrix) Set(k Key, pressed bool) {
	if pressed {
		m.Press(k)
	} else {
		m.Release(k)
	}
}

// Pressed returns true if the key is pressed.
func (m Matrix) Pressed(k Key) bool {
	return m[k.Row()&7]&(1<<k.Bit()) != 0
}

// Read returns the value of the matrix as seen by the ULA for the high byte of
// the port address. Bits 0 to 4 are the keys of every selected half-row.
// Bits 5 to 7 are always set.
func (m Matrix) Read(high uint8) uint8 {
	v := uint8(0x1f)
	for row := range m {
		if high&(1<<row) == 0 {
			v &^= m[row]
		}
	}
	return v | 0xe0
}
