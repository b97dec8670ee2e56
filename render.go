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
	"image"
	"image/png"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/zxchip/digest"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/modalflag"
	"github.com/jetsetilly/zxchip/paths"
	"github.com/jetsetilly/zxchip/snapshot"
	"github.com/pkg/term"
	"github.com/spf13/afero"
)

// headless implements the gui.Display interface for the RENDER mode.
type headless struct {
	keys keyboard.Matrix
	quit chan bool
}

func (h *headless) SetFrame(_ *image.RGBA) {}

func (h *headless) Keyboard() keyboard.Matrix {
	return h.keys
}

func (h *headless) Joystick() kempston.Direction {
	return 0
}

func (h *headless) Quit() <-chan bool {
	return h.quit
}

// keypress puts the controlling terminal into raw mode and closes the quit
// channel when a key is pressed. the returned function restores the terminal.
//
// if there is no controlling terminal then the run can only end when the
// requested number of frames have been rendered.
func keypress(quit chan bool) func() {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return func() {}
	}
	if err := t.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = t.Restore()
		_ = t.Close()
		return func() {}
	}

	var done atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		b := make([]byte, 1)
		for !done.Load() {
			n, err := t.Read(b)
			if n > 0 {
				close(quit)
				return
			}
			if err != nil && err != io.EOF {
				return
			}
		}
	}()

	return func() {
		done.Store(true)
		wg.Wait()
		_ = t.Restore()
		_ = t.Close()
	}
}

func render(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("renders frames without a window. press any key to stop early")

	flags := addMachineFlags(md)
	frames := md.AddInt("frames", 50, "number of frames to render")
	pngFile := md.AddString("png", "", "filename for the final frame (default is a unique name)")
	wavFile := md.AddString("wav", "", "record audio to wav file")
	snapFile := md.AddString("snapshot", "", "save snapshot of the machine after the final frame")
	digests := md.AddBool("digest", false, "print video and audio digests of the run")
	keys := md.AddString("keys", "", "keys held down for the whole run. eg. \"CAPS,Q\"")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *frames <= 0 {
		return fmt.Errorf("number of frames must be greater than zero")
	}

	m, err := flags.machine(md, output)
	if err != nil {
		return err
	}

	h := &headless{
		quit: make(chan bool),
	}
	h.keys, err = parseKeys(*keys)
	if err != nil {
		return err
	}
	m.SetKeyboard(h.keys)

	wav, err := newWav(m, *wavFile)
	if err != nil {
		return err
	}

	s := &session{
		m:       m,
		display: h,
		wav:     wav,
		frames:  *frames,
		unpaced: true,
	}
	if *digests {
		s.videoDigest = digest.NewVideo()
		s.audioDigest = digest.NewAudio()
	}

	restore := keypress(h.quit)
	err = s.run()
	restore()
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "rendered %d frames on %s\n", m.Frame()+1, m)
	if *digests {
		fmt.Fprintln(output, s.videoDigest)
		fmt.Fprintln(output, s.audioDigest)
	}

	if *pngFile == "" {
		*pngFile = fmt.Sprintf("%s.png", paths.UniqueFilename("frame", m.ULA.Spec().ID))
	}
	if err := savePNG(afero.NewOsFs(), *pngFile, m); err != nil {
		return err
	}
	fmt.Fprintf(output, "frame written to %s\n", *pngFile)

	if *snapFile != "" {
		st, err := m.ULA.Snapshot()
		if err != nil {
			return err
		}
		if err := snapshot.Save(nil, *snapFile, st); err != nil {
			return err
		}
		fmt.Fprintf(output, "snapshot written to %s\n", *snapFile)
	}

	return endWav(wav, output)
}

// parse a comma separated list of key names.
func parseKeys(s string) (keyboard.Matrix, error) {
	var mx keyboard.Matrix
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue // for loop
		}
		ks, ok := keyboard.HostKeys(n)
		if !ok {
			return mx, fmt.Errorf("unknown key (%s)", n)
		}
		for _, k := range ks {
			mx.Press(k)
		}
	}
	return mx, nil
}

func savePNG(fs afero.Fs, filename string, m *hardware.Machine) error {
	f, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, m.ULA.Render())
}
