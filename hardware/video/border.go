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

package video

import (
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/preferences"
)

// BorderSize is the number of border pixels drawn on each side of the display.
type BorderSize int

// List of valid BorderSize values.
const (
	BorderFull    BorderSize = 48
	BorderLarge   BorderSize = 40
	BorderMedium  BorderSize = 32
	BorderSmall   BorderSize = 24
	BorderTiny    BorderSize = 16
	BorderMinimal BorderSize = 8
	BorderNil     BorderSize = 0
)

// UnknownBorderSize is the curated error pattern returned by
// ParseBorderSize().
const UnknownBorderSize = "video: unknown border size (%s)"

// ParseBorderSize converts the name of a border size, as used by the
// preferences package, to a BorderSize.
func ParseBorderSize(s string) (BorderSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case preferences.BorderFull:
		return BorderFull, nil
	case preferences.BorderLarge:
		return BorderLarge, nil
	case preferences.BorderMedium:
		return BorderMedium, nil
	case preferences.BorderSmall:
		return BorderSmall, nil
	case preferences.BorderTiny:
		return BorderTiny, nil
	case preferences.BorderMinimal:
		return BorderMinimal, nil
	case preferences.BorderNil:
		return BorderNil, nil
	}
	return BorderFull, curated.Errorf(UnknownBorderSize, s)
}

// the border is drawn in groups of eight pixels. each group takes four cycles.
const (
	chunkPixels = 8
	chunkCycles = 4
)

// BorderChange records a change of border colour.
type BorderChange struct {
	Time   int
	Colour uint8
}

// borderWriter draws border chunks. changes must be applied in time order.
type borderWriter struct {
	changes []BorderChange
	idx     int
	current uint8
}

// the colour of the border for the chunk at time t. a change is visible in a
// chunk if it happened before the chunk's time.
func (bw *borderWriter) at(t int) uint8 {
	for bw.idx < len(bw.changes) && bw.changes[bw.idx].Time < t {
		bw.current = bw.changes[bw.idx].Colour
		bw.idx++
	}
	return bw.current
}
