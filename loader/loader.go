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

package loader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"path"
	"strings"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/hardware/memory"
	"github.com/jetsetilly/zxchip/hardware/peripherals/tape"
	"github.com/jetsetilly/zxchip/hardware/ula"
	"github.com/jetsetilly/zxchip/snapshot"
	"github.com/spf13/afero"
)

// sentinal error patterns.
const (
	NoFilename   = "loader: no filename"
	LoadError    = "loader: %v"
	UnknownMedia = "loader: unknown media (%s)"
	WrongSize    = "loader: %s has the wrong size (%d bytes)"
	HashMismatch = "loader: unexpected hash value for %s"
)

// Media identifies how the data of a Loader is used.
type Media string

// List of valid Media values.
const (
	ROM      Media = "ROM"
	Screen   Media = "SCR"
	Tape     Media = "TAPE"
	Dock     Media = "DCK"
	Snapshot Media = "SNAP"
)

// ScreenSize is the size of a SCREEN$ dump. The pixel data followed by the
// attribute data.
const ScreenSize = 6912

var extensions = map[string]Media{
	".ROM":  ROM,
	".BIN":  ROM,
	".SCR":  Screen,
	".WAV":  Tape,
	".MP3":  Tape,
	".DCK":  Dock,
	".SNAP": Snapshot,
}

// FileExtensions is the list of extensions that can be loaded with the AUTO
// media type.
var FileExtensions = [...]string{".ROM", ".BIN", ".SCR", ".WAV", ".MP3", ".DCK", ".SNAP"}

// Loader specifies the data to be attached to the emulated machine.
type Loader struct {
	fs afero.Fs

	Filename string
	Media    Media

	// sha1 of the data. if the field is set before Load() is called then the
	// loaded data must match
	Hash string

	Data []byte

	// the player created by Attach() for Tape media
	Tape *tape.Player
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The media argument can be "AUTO" or the empty string, in which case the
// media is decided by the filename extension. If fs is nil the OS filesystem
// is used.
func NewLoader(fs afero.Fs, filename string, media string) (Loader, error) {
	if filename == "" {
		return Loader{}, curated.Errorf(NoFilename)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	ld := Loader{
		fs:       fs,
		Filename: filename,
	}

	media = strings.TrimSpace(strings.ToUpper(media))
	if media == "AUTO" || media == "" {
		m, ok := extensions[strings.ToUpper(path.Ext(filename))]
		if !ok {
			return Loader{}, curated.Errorf(UnknownMedia, path.Ext(filename))
		}
		ld.Media = m
	} else {
		switch Media(media) {
		case ROM, Screen, Tape, Dock, Snapshot:
			ld.Media = Media(media)
		default:
			return Loader{}, curated.Errorf(UnknownMedia, media)
		}
	}

	return ld, nil
}

func (ld Loader) String() string {
	return fmt.Sprintf("%s (%s)", ld.ShortName(), ld.Media)
}

// ShortName returns the filename without the path and extension.
func (ld Loader) ShortName() string {
	n := path.Base(ld.Filename)
	return strings.TrimSuffix(n, path.Ext(n))
}

// HasLoaded returns true if Load() has been called successfully.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the data from the filesystem. Does nothing if the data has already
// been loaded.
func (ld *Loader) Load() error {
	if ld.HasLoaded() {
		return nil
	}

	data, err := afero.ReadFile(ld.fs, ld.Filename)
	if err != nil {
		return curated.Errorf(LoadError, err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(HashMismatch, ld.Filename)
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

// Attach the data to the machine. The data is loaded first if necessary.
func (ld *Loader) Attach(u *ula.ULA) error {
	if err := ld.Load(); err != nil {
		return err
	}

	switch ld.Media {
	case ROM:
		return ld.attachROM(u.Memory())

	case Screen:
		if len(ld.Data) != ScreenSize {
			return curated.Errorf(WrongSize, ld.Filename, len(ld.Data))
		}
		copy(u.Memory().ScreenData(), ld.Data)
		u.Invalidate()

	case Tape:
		pcm, err := tape.DecodePCM(u.Env(), bytes.NewReader(ld.Data), path.Ext(ld.Filename))
		if err != nil {
			return err
		}
		ld.Tape = tape.NewPlayer(u.Env(), ld.ShortName(), tape.Slice(pcm, u.Spec().ClockHz()))
		if err := u.AttachDevice(ld.Tape); err != nil {
			return err
		}

	case Dock:
		if err := u.Memory().LoadDock(memory.DOCK, ld.Data); err != nil {
			return curated.Errorf(LoadError, err)
		}

	case Snapshot:
		s, err := snapshot.Decode(bytes.NewReader(ld.Data))
		if err != nil {
			return err
		}
		return u.Plumb(s)

	default:
		return curated.Errorf(UnknownMedia, ld.Media)
	}

	return nil
}

// ROM images are a whole number of banks. an image smaller than one bank is
// padded.
func (ld *Loader) attachROM(mem *memory.Memory) error {
	n := len(ld.Data)
	if n == 0 || n > len(mem.ROM)*memory.BankSize || (n > memory.BankSize && n%memory.BankSize != 0) {
		return curated.Errorf(WrongSize, ld.Filename, n)
	}
	for b := 0; b*memory.BankSize < n; b++ {
		end := (b + 1) * memory.BankSize
		if end > n {
			end = n
		}
		if err := mem.LoadROM(b, ld.Data[b*memory.BankSize:end]); err != nil {
			return curated.Errorf(LoadError, err)
		}
	}
	return nil
}
