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

package main

import (
	"io"
	"time"

	"github.com/jetsetilly/zxchip/modalflag"
	"github.com/jetsetilly/zxchip/performance"
)

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	flags := addMachineFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	leadtime := md.AddDuration("leadtime", 2*time.Second, "time before measurement starts")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	m, err := flags.machine(md, output)
	if err != nil {
		return err
	}

	return performance.Check(output, m, prf, *leadtime, *duration)
}
