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

// Package sdlwindow is a simple front-end that displays the emulation in an
// SDL window. The window must be created and serviced on the main thread.
package sdlwindow

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/zxchip/curated"
	"github.com/jetsetilly/zxchip/gui"
	"github.com/jetsetilly/zxchip/hardware/peripherals/kempston"
	"github.com/jetsetilly/zxchip/hardware/peripherals/keyboard"
	"github.com/jetsetilly/zxchip/hardware/peripherals/mouse"
	"github.com/jetsetilly/zxchip/version"
	"github.com/veandco/go-sdl2/sdl"
)

// WindowError is the curated error pattern for problems creating the window.
const WindowError = "sdlwindow: %v"

// the number of bytes required for each pixel
const pixelDepth = 4

// RewindKey is the host key that rewinds the emulation by one second.
const RewindKey = "F5"

// how long Service() will wait for a new frame before returning
const serviceWait = 5 * time.Millisecond

// Window implements the gui.Display interface.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32

	// frames waiting to be presented. a frame is dropped if the previous
	// frame has not been presented yet
	frames chan []byte

	// joystick keys are used for the joystick rather than the keyboard
	joystick bool

	// crit protects keys, dir and the pointer fields
	crit sync.Mutex
	keys keyboard.Host
	dir  kempston.Direction

	// pointer movement accumulated since the previous call to Pointer()
	dx, dy  int
	buttons map[mouse.Button]bool

	// the number of times the rewind key has been pressed
	rewinds int

	quit     chan bool
	quitOnce sync.Once
}

// NewWindow creates a window large enough for images of the specified size,
// multiplied by scale. MUST be called from the main thread.
func NewWindow(width int, height int, scale int, joystick bool) (*Window, error) {
	if scale < 1 {
		scale = 1
	}

	win := &Window{
		width:    int32(width),
		height:   int32(height),
		frames:   make(chan []byte, 1),
		joystick: joystick,
		buttons:  make(map[mouse.Button]bool),
		quit:     make(chan bool),
	}

	var err error

	// SDL_INIT_AUDIO is required by the sdlaudio package
	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(WindowError, err)
	}

	win.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		win.width*int32(scale), win.height*int32(scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(WindowError, err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		win.window.Destroy()
		return nil, curated.Errorf(WindowError, err)
	}

	// logical size keeps the aspect ratio when the window is resized
	err = win.renderer.SetLogicalSize(win.width, win.height)
	if err != nil {
		win.destroy()
		return nil, curated.Errorf(WindowError, err)
	}

	win.texture, err = win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), win.width, win.height)
	if err != nil {
		win.destroy()
		return nil, curated.Errorf(WindowError, err)
	}

	return win, nil
}

func (win *Window) String() string {
	return fmt.Sprintf("sdl window %dx%d", win.width, win.height)
}

func (win *Window) destroy() {
	if win.texture != nil {
		_ = win.texture.Destroy()
	}
	if win.renderer != nil {
		_ = win.renderer.Destroy()
	}
	if win.window != nil {
		_ = win.window.Destroy()
	}
}

// Destroy the window. MUST be called from the main thread.
func (win *Window) Destroy(output io.Writer) {
	win.destroy()
	sdl.Quit()
	win.close()
	if output != nil {
		fmt.Fprintln(output, "window closed")
	}
}

func (win *Window) close() {
	win.quitOnce.Do(func() {
		close(win.quit)
	})
}

// Service window events and present the most recent frame. MUST only be
// called from the main thread.
func (win *Window) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.close()

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue // for loop
			}
			win.key(sdl.GetKeyName(ev.Keysym.Sym), ev.Type == sdl.KEYDOWN)

		case *sdl.MouseMotionEvent:
			win.crit.Lock()
			win.dx += int(ev.XRel)
			win.dy += int(ev.YRel)
			win.crit.Unlock()

		case *sdl.MouseButtonEvent:
			if b, ok := sdlButtons[ev.Button]; ok {
				win.crit.Lock()
				win.buttons[b] = ev.Type == sdl.MOUSEBUTTONDOWN
				win.crit.Unlock()
			}
		}
	}

	select {
	case pix := <-win.frames:
		if err := win.texture.Update(nil, pix, int(win.width*pixelDepth)); err != nil {
			return
		}
		_ = win.renderer.Clear()
		_ = win.renderer.Copy(win.texture, nil, nil)
		win.renderer.Present()
	case <-time.After(serviceWait):
	}
}

// SDL names keys in mixed case. the keyboard package expects upper case.
func (win *Window) key(name string, down bool) {
	name = strings.ToUpper(name)

	win.crit.Lock()
	defer win.crit.Unlock()

	if name == RewindKey {
		if down {
			win.rewinds++
		}
		return
	}

	if win.joystick {
		if d, ok := gui.JoystickKeys[name]; ok {
			if down {
				win.dir |= d
			} else {
				win.dir &^= d
			}
			return
		}
	}

	if down {
		win.keys.Press(name)
	} else {
		win.keys.Release(name)
	}
}

// SetFrame implements the gui.Display interface.
func (win *Window) SetFrame(img *image.RGBA) {
	if img.Rect.Dx() != int(win.width) || img.Rect.Dy() != int(win.height) {
		return
	}

	// drop the frame if the main thread has not presented the previous one
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	select {
	case win.frames <- pix:
	default:
	}
}

// Keyboard implements the gui.Display interface.
func (win *Window) Keyboard() keyboard.Matrix {
	win.crit.Lock()
	defer win.crit.Unlock()
	return win.keys.Matrix()
}

// Joystick implements the gui.Display interface.
func (win *Window) Joystick() kempston.Direction {
	win.crit.Lock()
	defer win.crit.Unlock()
	return win.dir
}

var sdlButtons = map[uint8]mouse.Button{
	sdl.BUTTON_LEFT:   mouse.Left,
	sdl.BUTTON_MIDDLE: mouse.Middle,
	sdl.BUTTON_RIGHT:  mouse.Right,
}

// Pointer implements the gui.Pointer interface.
func (win *Window) Pointer() (int, int, []mouse.Button) {
	win.crit.Lock()
	defer win.crit.Unlock()
	dx, dy := win.dx, win.dy
	win.dx, win.dy = 0, 0
	var held []mouse.Button
	for b, down := range win.buttons {
		if down {
			held = append(held, b)
		}
	}
	return dx, dy, held
}

// RewindRequests implements the gui.Rewinder interface.
func (win *Window) RewindRequests() int {
	win.crit.Lock()
	defer win.crit.Unlock()
	n := win.rewinds
	win.rewinds = 0
	return n
}

// Quit implements the gui.Display interface.
func (win *Window) Quit() <-chan bool {
	return win.quit
}
