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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/zxchip/prefs"
	"github.com/jetsetilly/zxchip/test"
)

func TestCommandLineParse(t *testing.T) {
	// unused preferences are returned sorted by key with normalised spacing.
	// malformed pairs are dropped
	for _, c := range []struct {
		push   string
		unused string
	}{
		{push: "", unused: ""},
		{push: "hardware.latetimings::true", unused: "hardware.latetimings::true"},
		{push: "  audio.gain::  0.5 ", unused: "audio.gain::0.5"},
		{push: "video.bordersize::small;audio.gain::0.5", unused: "audio.gain::0.5; video.bordersize::small"},
		{push: "hardware.latetimings", unused: ""},
		{push: "hardware.latetimings:true;audio.gain::1", unused: "audio.gain::1"},
		{push: "a::b::c", unused: ""},
	} {
		prefs.PushCommandLineStack(c.push)
		test.ExpectEquality(t, prefs.PopCommandLineStack(), c.unused, c.push)
	}
}

func TestCommandLineGet(t *testing.T) {
	prefs.PushCommandLineStack("hardware.latetimings::true; audio.gain::0.5")

	ok, v := prefs.GetCommandLinePref("hardware.latetimings")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("true"))

	// a value can only be taken once
	ok, _ = prefs.GetCommandLinePref("hardware.latetimings")
	test.ExpectFailure(t, ok)

	ok, _ = prefs.GetCommandLinePref("video.bordersize")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "audio.gain::0.5")

	// nothing to get from an empty stack
	ok, _ = prefs.GetCommandLinePref("audio.gain")
	test.ExpectFailure(t, ok)
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("video.bordersize::full")
	prefs.PushCommandLineStack("video.bordersize::none")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the most recent group is visible
	ok, v := prefs.GetCommandLinePref("video.bordersize")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("none"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "video.bordersize::full")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
