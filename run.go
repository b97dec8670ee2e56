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
	"os"
	"strings"

	"github.com/jetsetilly/zxchip/gui"
	"github.com/jetsetilly/zxchip/gui/sdlwindow"
	"github.com/jetsetilly/zxchip/gui/termview"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hostaudio"
	"github.com/jetsetilly/zxchip/hostaudio/otoaudio"
	"github.com/jetsetilly/zxchip/hostaudio/sdlaudio"
	"github.com/jetsetilly/zxchip/modalflag"
	"github.com/jetsetilly/zxchip/rewind"
)

// list of audio backends accepted by the -audio flag
const (
	audioSDL  = "SDL"
	audioOto  = "OTO"
	audioNone = "NONE"
)

// closer is satisfied by both audio backends.
type closer interface {
	Close()
}

type otoCloser struct {
	aud *otoaudio.Audio
}

func (c otoCloser) Close() {
	_ = c.aud.Close()
}

// open the named audio backend. returns a nil carousel if audio is disabled
// or if the machine is running in turbo mode.
func openAudio(m *hardware.Machine, backend string) (*hostaudio.Carousel, closer, error) {
	if m.Env.Prefs.Turbo.Get().(bool) {
		return nil, nil, nil
	}

	rate := m.ULA.AudioConfig().SampleRate

	switch strings.ToUpper(backend) {
	case audioSDL:
		c := hostaudio.NewCarousel(hostaudio.DefaultDepth)
		aud, err := sdlaudio.NewAudio(c, rate)
		if err != nil {
			return nil, nil, err
		}
		return c, aud, nil

	case audioOto:
		c := hostaudio.NewCarousel(hostaudio.DefaultDepth)
		aud, err := otoaudio.NewAudio(c, rate)
		if err != nil {
			return nil, nil, err
		}
		return c, otoCloser{aud: aud}, nil

	case audioNone:
		return nil, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown audio backend (%s)", backend)
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AdditionalHelp("media files (ROM, SCR, WAV, MP3, DCK, SNAP) are attached in order")

	flags := addMachineFlags(md)
	scale := md.AddInt("scale", 2, "window scaling")
	backend := md.AddString("audio", audioSDL, "audio backend: SDL, OTO, NONE")
	wavFile := md.AddString("wav", "", "record audio to wav file")
	rewindSize := md.AddInt("rewind", rewind.DefaultEntries, fmt.Sprintf("number of rewind states (%s key rewinds)", sdlwindow.RewindKey))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := flags.machine(md, os.Stdout)
	if err != nil {
		return err
	}

	// create window in the main thread
	w, h := m.ULA.FrameSize()
	sync.creator <- func() (GuiCreator, error) {
		return sdlwindow.NewWindow(w, h, *scale, m.HasJoystick())
	}

	var display gui.Display
	select {
	case g := <-sync.creation:
		display = g.(gui.Display)
	case err := <-sync.creationError:
		return err
	}

	carousel, aud, err := openAudio(m, *backend)
	if err != nil {
		return err
	}
	if aud != nil {
		defer aud.Close()
	}

	wav, err := newWav(m, *wavFile)
	if err != nil {
		return err
	}

	s := &session{
		m:        m,
		display:  display,
		carousel: carousel,
		wav:      wav,
	}
	if *rewindSize > 0 {
		s.rewind = rewind.NewRewind(m, *rewindSize, 1)
	}

	if err := s.run(); err != nil {
		return err
	}

	if carousel != nil {
		queued, skipped, underruns := carousel.Stats()
		fmt.Printf("audio: %d frames queued, %d skipped, %d underruns\n", queued, skipped, underruns)
	}

	return endWav(wav, os.Stdout)
}

func terminal(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("media files (ROM, SCR, WAV, MP3, DCK, SNAP) are attached in order. ctrl-c or F10 quits")

	flags := addMachineFlags(md)
	backend := md.AddString("audio", audioOto, "audio backend: OTO, NONE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if strings.ToUpper(*backend) == audioSDL {
		return fmt.Errorf("SDL audio is not available in %s mode", md)
	}

	m, err := flags.machine(md, os.Stdout)
	if err != nil {
		return err
	}

	view, err := termview.NewView(m.HasJoystick())
	if err != nil {
		return err
	}
	defer view.Destroy()

	carousel, aud, err := openAudio(m, *backend)
	if err != nil {
		return err
	}
	if aud != nil {
		defer aud.Close()
	}

	s := &session{
		m:        m,
		display:  view,
		carousel: carousel,
	}

	return s.run()
}
