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
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/engine"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/modalflag"
	"github.com/spf13/afero"
)

// chipset is the part of the machine written by the DUMP mode. memory banks
// are not included.
type chipset struct {
	Spec      *specification.Spec
	Frames    uint64
	Ticks     uint64
	Border    uint8
	Paging    memory.Registers
	Keyboard  keyboard.Matrix
	CPU       engine.Halt
	Devices   []string
	Intercept []string
}

func newChipset(m *hardware.Machine) *chipset {
	c := &chipset{
		Spec:     m.ULA.Spec(),
		Frames:   m.ULA.Frames(),
		Ticks:    m.ULA.Ticks(),
		Border:   m.ULA.Border(),
		Paging:   m.ULA.Memory().Registers,
		Keyboard: m.ULA.Keyboard(),
		CPU:      *m.CPU,
		Devices:  m.ULA.Chain().Names(),
	}
	for _, pi := range m.ULA.Interceptors() {
		c.Intercept = append(c.Intercept, pi.Name())
	}
	return c
}

// writeChipset writes a graphviz description of the chipset.
func writeChipset(w io.Writer, m *hardware.Machine) {
	memviz.Map(w, newChipset(m))
}

func dump(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("writes a graphviz (dot) description of the chipset after running the machine")

	flags := addMachineFlags(md)
	frames := md.AddInt("frames", 1, "number of frames to run before dumping")
	dotFile := md.AddString("o", "zxchip.dot", "output file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := flags.machine(md, output)
	if err != nil {
		return err
	}

	if err := m.RunForFrameCount(*frames, nil); err != nil {
		return err
	}

	f, err := afero.NewOsFs().Create(*dotFile)
	if err != nil {
		return err
	}
	defer f.Close()

	writeChipset(f, m)

	fmt.Fprintf(output, "chipset written to %s\n", *dotFile)

	return nil
}
