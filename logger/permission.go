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

package logger

// Permission decides whether a log entry should be made. An emulation
// environment implements it so that only the main emulation adds to the log.
type Permission interface {
	AllowLogging() bool
}

type constant bool

func (c constant) AllowLogging() bool {
	return bool(c)
}

// Allow and Deny do not depend on an emulation environment. Host side
// packages such as the audio output and the wav writer log with Allow.
var (
	Allow Permission = constant(true)
	Deny  Permission = constant(false)
)
