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

// Package preferences collates the preference values used by the emulated
// hardware. Preferences are stored on disk with the prefs package and can be
// overridden from the command line with prefs.PushCommandLineStack().
package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/paths"
	"github.com/jetsetilly/zxchip/prefs"
	"github.com/spf13/afero"
)

// List of valid values for the ReadEarMode preference.
const (
	ReadEarIssue3 = "issue3"
	ReadEarIssue2 = "issue2"
	ReadEarClear  = "clear"
)

// ReadEarModes is the list of valid values for the ReadEarMode preference.
var ReadEarModes = []string{ReadEarIssue3, ReadEarIssue2, ReadEarClear}

// List of valid values for the BorderSize preference.
const (
	BorderFull    = "full"
	BorderLarge   = "large"
	BorderMedium  = "medium"
	BorderSmall   = "small"
	BorderTiny    = "tiny"
	BorderMinimal = "minimal"
	BorderNil     = "nil"
)

// BorderSizes is the list of valid values for the BorderSize preference.
var BorderSizes = []string{BorderFull, BorderLarge, BorderMedium, BorderSmall, BorderTiny, BorderMinimal, BorderNil}

// InvalidValue is the curated error pattern returned when a preference is set
// to a value outside of its list of valid values.
const InvalidValue = "preferences: invalid value for %s (%v)"

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// initialise RAM to an unknown state on a hard reset
	RandomState prefs.Bool

	// the interrupt is raised one cycle earlier than normal. some machines
	// were manufactured with this timing and some software relies on it
	LateTimings prefs.Bool

	// a read claimed by more than one device on the bus will cause a panic
	// rather than a log entry
	StrictBus prefs.Bool

	// how the EAR input bit of the ULA port behaves when no tape is attached
	ReadEarMode prefs.String

	// the amount of border visible in the rendered frame
	BorderSize prefs.String

	// audio output
	AudioGain  prefs.Float
	SampleRate prefs.Int

	// frames are produced as quickly as possible and audio is not synthesised
	Turbo prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

func oneOf(key string, valid []string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		s := strings.ToLower(fmt.Sprintf("%v", v))
		for _, o := range valid {
			if s == o {
				return nil
			}
		}
		return curated.Errorf(InvalidValue, key, v)
	}
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. The preferences file is located on the supplied filesystem. If fs is
// nil then the OS filesystem is used.
func NewPreferences(fs afero.Fs) (*Preferences, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	p := &Preferences{}
	p.ReadEarMode.SetHookPre(oneOf("hardware.readearmode", ReadEarModes))
	p.BorderSize.SetHookPre(oneOf("video.bordersize", BorderSizes))
	p.SampleRate.SetHookPre(func(v prefs.Value) error {
		if n, ok := v.(int); ok && n < 8000 {
			return curated.Errorf(InvalidValue, "audio.samplerate", v)
		}
		return nil
	})
	p.SetDefaults()

	pth, err := paths.ResourcePath(fs, "", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(fs, pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("hardware.randstate", &p.RandomState)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.latetimings", &p.LateTimings)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.strictbus", &p.StrictBus)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.readearmode", &p.ReadEarMode)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("video.bordersize", &p.BorderSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.gain", &p.AudioGain)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.samplerate", &p.SampleRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.turbo", &p.Turbo)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(false)
	p.LateTimings.Set(false)
	p.StrictBus.Set(false)
	p.ReadEarMode.Set(ReadEarIssue3)
	p.BorderSize.Set(BorderFull)
	p.AudioGain.Set(0.5)
	p.SampleRate.Set(44100)
	p.Turbo.Set(false)
}

// Reset all hardware preferences to the default values.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
