//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// maxPutImageBytes keeps each PutImage under the core protocol request limit.
const maxPutImageBytes = 1 << 17

const (
	xkReturn    = 0xff0d
	xkKPEnter   = 0xff8d
	xkBackSpace = 0xff08
	xkTab       = 0xff09
	xkEscape    = 0xff1b
)

// x11Framebuffer keeps pixels in memory and copies them to a plain X11 window on
// Present.
type x11Framebuffer struct {
	*memFramebuffer

	xu    *xgbutil.XUtil
	win   xproto.Window
	gc    xproto.Gcontext
	depth byte

	mu      sync.Mutex
	scratch []byte
}

func openX11(width, height int, kbd *hostKeyboard) (*x11Framebuffer, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("hal: x11 connect: %w", err)
	}
	keybind.Initialize(xu)

	screen := xu.Screen()
	win, err := xproto.NewWindowId(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("hal: x11 window id: %w", err)
	}
	xproto.CreateWindow(
		xu.Conn(),
		xproto.WindowClassCopyFromParent,
		win,
		screen.Root,
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress,
		},
	)

	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("hal: x11 gc id: %w", err)
	}
	xproto.CreateGC(
		xu.Conn(),
		gc,
		xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{screen.WhitePixel, screen.BlackPixel},
	)
	xproto.MapWindow(xu.Conn(), win)

	f := &x11Framebuffer{
		memFramebuffer: newMemFramebuffer(width, height),
		xu:             xu,
		win:            win,
		gc:             gc,
		depth:          screen.RootDepth,
	}
	go f.events(kbd)
	return f, nil
}

// Present copies the framebuffer to the window in row bands.
func (f *x11Framebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, h := f.width, f.height
	rows := maxPutImageBytes / (w * 4)
	if rows < 1 {
		rows = 1
	}
	if need := w * rows * 4; len(f.scratch) < need {
		f.scratch = make([]byte, need)
	}
	stride := f.stride / 4
	for y := 0; y < h; y += rows {
		n := rows
		if y+n > h {
			n = h - y
		}
		data := f.scratch[:w*n*4]
		xrgbToBGRX(data, f.mem, w, stride, y, n)
		xproto.PutImage(
			f.xu.Conn(),
			xproto.ImageFormatZPixmap,
			xproto.Drawable(f.win),
			f.gc,
			uint16(w), uint16(n),
			0, int16(y),
			0,
			f.depth,
			data,
		)
	}
	f.xu.Sync()
	return nil
}

func (f *x11Framebuffer) Close() error {
	f.xu.Conn().Close()
	return nil
}

// events forwards key presses until the connection closes.
func (f *x11Framebuffer) events(kbd *hostKeyboard) {
	for {
		ev, err := f.xu.Conn().WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.ExposeEvent:
			if e.Count == 0 {
				_ = f.Present()
			}
		case xproto.KeyPressEvent:
			f.key(kbd, e)
		}
	}
}

func (f *x11Framebuffer) key(kbd *hostKeyboard, e xproto.KeyPressEvent) {
	switch keybind.KeysymGet(f.xu, e.Detail, 0) {
	case 0:
		return
	case xkReturn, xkKPEnter:
		kbd.push(KeyEvent{Code: KeyEnter, Press: true})
		return
	case xkBackSpace:
		kbd.push(KeyEvent{Code: KeyBackspace, Press: true})
		return
	case xkTab:
		kbd.push(KeyEvent{Code: KeyTab, Press: true})
		return
	case xkEscape:
		kbd.push(KeyEvent{Code: KeyEscape, Press: true})
		return
	}
	if s := keybind.LookupString(f.xu, e.State, e.Detail); s != "" {
		r, _ := utf8.DecodeRuneInString(s)
		kbd.push(KeyEvent{Press: true, Rune: r})
	}
}
