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

// Package statsview serves runtime statistics over HTTP. The server is only
// available when the project is built with the statsview build tag:
//
//	go build -tags statsview .
//
// Graphs of the Go runtime are then available at:
//
//	localhost:12600/debug/statsview
//
// The standard pprof endpoints are at:
//
//	localhost:12600/debug/pprof/
//
// Without the build tag Launch() does nothing and Available() returns false.
package statsview
