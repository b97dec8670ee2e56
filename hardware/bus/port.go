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

package bus

import "fmt"

// PortAddress describes the partial decoding of a port. A port matches if the
// bits selected by the mask equal the corresponding bits of Bits.
type PortAddress struct {
	Mask uint16
	Bits uint16
}

func (p PortAddress) String() string {
	return fmt.Sprintf("port %#04x/%#04x", p.Bits, p.Mask)
}

// Match returns true if the port is decoded by the PortAddress.
func (p PortAddress) Match(port uint16) bool {
	return port&p.Mask == p.Bits&p.Mask
}
