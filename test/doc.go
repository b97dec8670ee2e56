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

// Package test contains helper functions to remove common boilerplate from
// the standard go test harness.
//
// The Expect*() functions report a failed test with t.Errorf() and allow the
// test to continue. The Demand*() functions report with t.Fatalf() and should
// be used when further tests depend on the value being correct. For example,
// testing that the lengths of two slices are equal before iterating over them
// in unison.
//
// ExpectSuccess() and ExpectFailure() interpret values of type bool and error.
// A nil value is considered a success because of how errors are usually
// returned in Go.
//
// All functions take an optional list of tags that are prepended to the
// failure message. Useful when testing in a loop:
//
//	for i := range lines {
//		test.ExpectEquality(t, got[i], want[i], "line", i)
//	}
//
// The CompareWriter and RingWriter types implement io.Writer and are used to
// capture output. RingWriter keeps only the most recent lines and is used to
// capture the log echo.
package test
