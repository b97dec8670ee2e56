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
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/jetsetilly/zxchip/digest"
	"github.com/jetsetilly/zxchip/environment"
	"github.com/jetsetilly/zxchip/govern"
	"github.com/jetsetilly/zxchip/gui"
	"github.com/jetsetilly/zxchip/hardware"
	"github.com/jetsetilly/zxchip/hardware/peripherals/mouse"
	"github.com/jetsetilly/zxchip/hardware/specification"
	"github.com/jetsetilly/zxchip/hostaudio"
	"github.com/jetsetilly/zxchip/loader"
	"github.com/jetsetilly/zxchip/logger"
	"github.com/jetsetilly/zxchip/modalflag"
	"github.com/jetsetilly/zxchip/performance/limiter"
	"github.com/jetsetilly/zxchip/prefs"
	"github.com/jetsetilly/zxchip/rewind"
	"github.com/jetsetilly/zxchip/statsview"
	"github.com/jetsetilly/zxchip/wavwriter"
)

// the flags shared by every mode that creates a machine.
type machineFlags struct {
	model     *string
	kempston  *bool
	joystick  *string
	mouse     *bool
	ulaplus   *bool
	ay        *bool
	turbo     *bool
	prefs     *string
	log       *bool
	statsview *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	f := &machineFlags{
		model:    md.AddString("model", specification.Spec48K.ID, fmt.Sprintf("machine model: %s", strings.Join(specification.SpecList, ", "))),
		kempston: md.AddBool("kempston", false, "attach kempston joystick interface"),
		joystick: md.AddString("joystick", "", "attach joystick interface: fuller, sinclair1, sinclair2, cursor"),
		mouse:    md.AddBool("mouse", false, "attach kempston mouse interface"),
		ulaplus:  md.AddBool("ulaplus", false, "install ULAplus palette extension"),
		ay:       md.AddBool("ay", false, "attach AY sound chip (always present on the 128K)"),
		turbo:    md.AddBool("turbo", false, "run as fast as possible without audio"),
		prefs:    md.AddString("prefs", "", "preferences for this run. eg. \"hardware.latetimings::true; video.bordersize::small\""),
		log:      md.AddBool("log", false, "echo log to stdout"),
	}
	if statsview.Available() {
		f.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return f
}

// create a machine as described by the flags. media files named in the
// remaining arguments are attached in order.
func (f *machineFlags) machine(md *modalflag.Modes, output io.Writer) (*hardware.Machine, error) {
	if *f.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if f.statsview != nil && *f.statsview {
		statsview.Launch(output)
	}

	// command line preferences must be pushed before the environment is
	// created. the preferences are loaded from disk at that point
	prefs.PushCommandLineStack(*f.prefs)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
		}
	}()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return nil, err
	}

	if *f.turbo {
		if err := env.Prefs.Turbo.Set(true); err != nil {
			return nil, err
		}
	}

	spec, err := specification.Lookup(*f.model)
	if err != nil {
		return nil, err
	}

	m, err := hardware.NewMachine(env, spec, hardware.Peripherals{
		Kempston: *f.kempston,
		Joystick: *f.joystick,
		Mouse:    *f.mouse,
		ULAplus:  *f.ulaplus,
		AY:       *f.ay,
	})
	if err != nil {
		return nil, err
	}

	for _, arg := range md.RemainingArgs() {
		ld, err := loader.NewLoader(nil, arg, "AUTO")
		if err != nil {
			return nil, err
		}
		if err := ld.Attach(m.ULA); err != nil {
			return nil, err
		}
		if ld.Tape != nil {
			ld.Tape.Play()
		}
		logger.Logf(env, "zxchip", "attached %s", ld)
	}

	return m, nil
}

// session connects a machine to a display and, optionally, to a host audio
// device and a wav file.
type session struct {
	m       *hardware.Machine
	display gui.Display

	// nil if there is no audio device. frames are paced by a limiter
	carousel *hostaudio.Carousel

	// nil if audio is not being recorded
	wav *wavwriter.WavWriter

	// nil if output is not being hashed
	videoDigest *digest.Video
	audioDigest *digest.Audio

	rewind *rewind.Rewind

	// stop after this many frames. zero means run until the display quits
	frames int

	// run as quickly as possible even when not in turbo mode
	unpaced bool
}

// the duration of a single frame on the emulated machine.
func frameDuration(m *hardware.Machine) time.Duration {
	spec := m.ULA.Spec()
	return time.Duration(float64(spec.EOF()) / spec.ClockHz() * float64(time.Second))
}

func (s *session) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-s.display.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	if s.rewind != nil {
		if err := s.rewind.Reset(); err != nil {
			return err
		}
	}

	turbo := s.m.Env.Prefs.Turbo.Get().(bool)

	var lim *limiter.Limiter
	if s.carousel == nil && !turbo && !s.unpaced {
		lim = limiter.NewLimiter(frameDuration(s.m))
		defer lim.Stop()
	}

	count := 0

	return s.m.Run(func() (govern.State, error) {
		select {
		case <-s.display.Quit():
			return govern.Ending, nil
		default:
		}

		img := s.m.ULA.Render()
		s.display.SetFrame(img)
		if s.videoDigest != nil {
			s.videoDigest.Frame(img)
		}

		pcm := s.m.ULA.RenderAudio(s.m.ULA.AudioConfig())
		if s.audioDigest != nil {
			s.audioDigest.SetAudio(pcm)
		}
		if s.wav != nil {
			if err := s.wav.SetAudio(pcm); err != nil {
				return govern.Ending, err
			}
		}

		if s.carousel != nil {
			if _, err := s.carousel.Queue(ctx, pcm, turbo); err != nil {
				return govern.Ending, nil
			}
		} else if lim != nil {
			if !lim.Wait(ctx) {
				return govern.Ending, nil
			}
		}

		if s.rewind != nil {
			if err := s.rewind.Record(); err != nil {
				return govern.Ending, err
			}
			if err := s.rewindRequest(); err != nil {
				return govern.Ending, err
			}
		}

		s.m.SetKeyboard(s.display.Keyboard())
		if s.m.HasJoystick() {
			s.m.SetJoystick(s.display.Joystick())
		}
		if s.m.Mouse != nil {
			if p, ok := s.display.(gui.Pointer); ok {
				dx, dy, held := p.Pointer()
				s.m.Mouse.Move(dx, dy)
				for _, b := range []mouse.Button{mouse.Left, mouse.Middle, mouse.Right} {
					s.m.Mouse.Set(b, slices.Contains(held, b))
				}
			}
		}

		count++
		if s.frames > 0 && count >= s.frames {
			return govern.Ending, nil
		}

		return govern.Running, nil
	})
}

// the wavwriter is created if a filename has been specified on the command
// line. End() must be called by the caller.
func newWav(m *hardware.Machine, filename string) (*wavwriter.WavWriter, error) {
	if filename == "" {
		return nil, nil
	}
	return wavwriter.New(nil, filename, m.ULA.AudioConfig().SampleRate)
}

func endWav(wav *wavwriter.WavWriter, output io.Writer) error {
	if wav == nil {
		return nil
	}
	if err := wav.End(); err != nil {
		return err
	}
	fmt.Fprintf(output, "audio written to %s\n", wav.Filename())
	return nil
}

// rewind the machine if the display has asked for it. each request moves the
// machine back by one second.
func (s *session) rewindRequest() error {
	r, ok := s.display.(gui.Rewinder)
	if !ok {
		return nil
	}

	n := r.RewindRequests()
	if n == 0 {
		return nil
	}

	back := uint64(n) * uint64(time.Second/frameDuration(s.m))

	fr := s.rewind.GetFrames()
	target := fr.Start
	if fr.Current > back && fr.Current-back > target {
		target = fr.Current - back
	}

	logger.Logf(s.m.Env, "rewind", "frame %d to frame %d", fr.Current, target)

	return s.rewind.GotoFrame(target)
}
