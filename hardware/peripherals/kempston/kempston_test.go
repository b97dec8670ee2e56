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

package kempston_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/test"
)

func TestKempston(t *testing.T) {
	k := kempston.NewKempston()
	test.ExpectEquality(t, k.String(), "kempston: centred")

	k.Set(kempston.Up, true)
	k.Set(kempston.Fire, true)
	test.ExpectEquality(t, k.String(), "kempston: up+fire")

	v, claimed, wait := k.ReadIO(0x001f, 0)
	test.ExpectEquality(t, claimed, true)
	test.ExpectEquality(t, v, uint8(0x18))
	test.ExpectEquality(t, wait, 0)

	// address line 5 is decoded
	_, claimed, _ = k.ReadIO(0x003f, 0)
	test.ExpectEquality(t, claimed, false)

	k.Set(kempston.Fire, false)
	test.ExpectEquality(t, k.State(), uint8(kempston.Up))

	data, err := k.MarshalBinary()
	test.DemandSuccess(t, err)
	k.Reset()
	test.ExpectEquality(t, k.State(), uint8(0))
	test.DemandSuccess(t, k.UnmarshalBinary(data))
	test.ExpectEquality(t, k.State(), uint8(kempston.Up))
	test.ExpectFailure(t, k.UnmarshalBinary(nil))
}

func TestParseDirection(t *testing.T) {
	d, err := kempston.ParseDirection(" Fire")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, kempston.Fire)
	_, err = kempston.ParseDirection("sideways")
	test.ExpectFailure(t, err)
}
