//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// HostConfig selects and sizes the host framebuffer.
type HostConfig struct {
	Width  int
	Height int

	// FBDev draws on a Linux framebuffer device (e.g. /dev/fb0). The device
	// dictates the geometry; Width and Height are ignored.
	FBDev string
	// X11 presents through a plain X11 window.
	X11 bool
}

const (
	defaultWidth  = 640
	defaultHeight = 480
)

type hostHAL struct {
	logger *hostLogger
	fb     Framebuffer
	kbd    *hostKeyboard
	t      *frameClock

	closers []func() error
}

// New returns a host HAL with an in-memory framebuffer of the default size.
func New() HAL {
	h, err := newHostHAL(HostConfig{})
	if err != nil {
		// In-memory back ends cannot fail.
		panic(err)
	}
	return h
}

func newHostHAL(cfg HostConfig) (*hostHAL, error) {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	h := &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		kbd:    newHostKeyboard(),
		t:      newFrameClock(framePeriod),
	}

	switch {
	case cfg.FBDev != "":
		f, err := openFBDev(cfg.FBDev)
		if err != nil {
			return nil, err
		}
		h.fb = f
		h.closers = append(h.closers, f.Close)
		h.logger.WriteLineString(fmt.Sprintf("hal: fbdev %s %dx%d stride=%d", cfg.FBDev, f.Width(), f.Height(), f.StrideBytes()))
	case cfg.X11:
		f, err := openX11(cfg.Width, cfg.Height, h.kbd)
		if err != nil {
			return nil, err
		}
		h.fb = f
		h.closers = append(h.closers, f.Close)
		h.logger.WriteLineString(fmt.Sprintf("hal: x11 window %dx%d", cfg.Width, cfg.Height))
	default:
		h.fb = newMemFramebuffer(cfg.Width, cfg.Height)
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

// Close releases device mappings and X connections.
func (h *hostHAL) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		errs = append(errs, h.closers[i]())
	}
	h.closers = nil
	return errors.Join(errs...)
}

type hostDisplay struct {
	fb Framebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
