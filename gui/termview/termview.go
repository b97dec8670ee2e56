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

// Package termview is a front-end that draws the emulation in a terminal
// using the tcell package. Each character cell shows two pixels by drawing
// the upper half block character with different foreground and background
// colours.
//
// Terminals do not report key releases. A key press is held down for a
// number of frames and then released automatically.
package termview

import (
	"image"
	"sync"
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/gui"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
)

// ScreenError is the curated error pattern for problems with the terminal.
const ScreenError = "termview: %v"

// HoldFrames is the number of frames a key remains pressed after the
// terminal reports it.
const HoldFrames = 6

const halfBlock = '▀'

// View implements the gui.Display interface.
type View struct {
	screen tcell.Screen

	// arrow keys and tab are used for the joystick rather than the keyboard
	joystick bool

	// crit protects the fields below it
	crit    sync.Mutex
	keys    keyboard.Host
	held    map[string]int
	dir     kempston.Direction
	dirHeld map[kempston.Direction]int

	quit     chan bool
	quitOnce sync.Once
}

// cells is the frame sampled to the size of the terminal.
type cells struct {
	width  int
	height int
	top    []tcell.Color
	bottom []tcell.Color
}

// NewView takes over the terminal. The terminal is restored with Destroy().
func NewView(joystick bool) (*View, error) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, curated.Errorf(ScreenError, err)
	}
	if err := screen.Init(); err != nil {
		return nil, curated.Errorf(ScreenError, err)
	}

	v := newView(screen, joystick)

	v.screen.HideCursor()
	v.screen.DisableMouse()
	v.screen.Clear()

	go v.events()

	return v, nil
}

func newView(screen tcell.Screen, joystick bool) *View {
	return &View{
		screen:   screen,
		joystick: joystick,
		held:     make(map[string]int),
		dirHeld:  make(map[kempston.Direction]int),
		quit:     make(chan bool),
	}
}

// Destroy restores the terminal.
func (v *View) Destroy() {
	v.screen.Fini()
	v.close()
}

func (v *View) close() {
	v.quitOnce.Do(func() {
		close(v.quit)
	})
}

// events are serviced until the screen is finalised. all drawing happens in
// this goroutine.
func (v *View) events() {
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC, tcell.KeyF10:
				v.close()
			default:
				v.key(ev)
			}

		case *tcell.EventResize:
			v.screen.Clear()
			v.screen.Sync()

		case *tcell.EventInterrupt:
			if c, ok := ev.Data().(cells); ok {
				v.draw(c)
			}
		}
	}
}

func (v *View) draw(c cells) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			i := y*c.width + x
			style := tcell.StyleDefault.Foreground(c.top[i]).Background(c.bottom[i])
			v.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	v.screen.Show()
}

// hostName converts the key event to a host key name as understood by the
// keyboard package. the shift return value is true for upper case letters.
func hostName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "SPACE", false
		}
		return string(unicode.ToUpper(r)), unicode.IsUpper(r)
	case tcell.KeyEnter:
		return "RETURN", false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "BACKSPACE", false
	case tcell.KeyEscape:
		return "ESCAPE", false
	case tcell.KeyUp:
		return "UP", false
	case tcell.KeyDown:
		return "DOWN", false
	case tcell.KeyLeft:
		return "LEFT", false
	case tcell.KeyRight:
		return "RIGHT", false
	case tcell.KeyTab:
		return "TAB", false
	}
	return "", false
}

func (v *View) key(ev *tcell.EventKey) {
	name, shift := hostName(ev)
	if name == "" {
		return
	}

	v.crit.Lock()
	defer v.crit.Unlock()

	if v.joystick {
		d, ok := gui.JoystickKeys[name]
		if name == "TAB" {
			d, ok = kempston.Fire, true
		}
		if ok {
			v.dir |= d
			v.dirHeld[d] = HoldFrames
			return
		}
	}

	if !v.keys.Press(name) {
		return
	}
	v.held[name] = HoldFrames

	if shift && v.keys.Press("LEFT SHIFT") {
		v.held["LEFT SHIFT"] = HoldFrames
	}
}

// SetFrame implements the gui.Display interface.
func (v *View) SetFrame(img *image.RGBA) {
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	iw := img.Rect.Dx()
	ih := img.Rect.Dy()

	// each cell is two pixels high. choose the largest scale that fits the
	// image in the terminal
	scale := float64(iw) / float64(w)
	if s := float64(ih) / float64(h*2); s > scale {
		scale = s
	}

	c := cells{
		width:  int(float64(iw) / scale),
		height: int(float64(ih) / scale / 2),
	}
	c.top = make([]tcell.Color, c.width*c.height)
	c.bottom = make([]tcell.Color, c.width*c.height)

	sample := func(x, y int) tcell.Color {
		px := img.Rect.Min.X + int(float64(x)*scale)
		py := img.Rect.Min.Y + int(float64(y)*scale)
		p := img.RGBAAt(px, py)
		return tcell.NewRGBColor(int32(p.R), int32(p.G), int32(p.B))
	}

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.top[y*c.width+x] = sample(x, y*2)
			c.bottom[y*c.width+x] = sample(x, y*2+1)
		}
	}

	// the frame is dropped if the event queue is full
	_ = v.screen.PostEvent(tcell.NewEventInterrupt(c))
}

// Keyboard implements the gui.Display interface. Keys that have been held
// for long enough are released.
func (v *View) Keyboard() keyboard.Matrix {
	v.crit.Lock()
	defer v.crit.Unlock()

	m := v.keys.Matrix()

	for name, n := range v.held {
		if n <= 1 {
			v.keys.Release(name)
			delete(v.held, name)
		} else {
			v.held[name] = n - 1
		}
	}

	return m
}

// Joystick implements the gui.Display interface.
func (v *View) Joystick() kempston.Direction {
	v.crit.Lock()
	defer v.crit.Unlock()

	d := v.dir

	for k, n := range v.dirHeld {
		if n <= 1 {
			v.dir &^= k
			delete(v.dirHeld, k)
		} else {
			v.dirHeld[k] = n - 1
		}
	}

	return d
}

// Quit implements the gui.Display interface.
func (v *View) Quit() <-chan bool {
	return v.quit
}
