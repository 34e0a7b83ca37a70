package app

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"fbcon/hal"
	"fbcon/internal/buildinfo"
	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/font"
	"fbcon/video/term"
)

// Name is printed in the boot banner.
const Name = "fbcon"

type Config struct {
	// Scale is the console glyph scale; 0 means 1.
	Scale int
	// Demo draws the shapes gallery after the banner.
	Demo bool
	// Script, when set, is run through an Interpreter after boot.
	Script io.Reader
	// ScriptDir resolves relative file names used by the script.
	ScriptDir string
	// TermDemo runs the ANSI terminal in place of the plain console.
	TermDemo bool
}

type system struct {
	log hal.Logger
	d   *fb.Device
	kbd hal.Keyboard
	t   *term.Terminal

	steps  uint64
	spin   int
	halted bool
}

// New initializes the console with default config and returns its step func.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{Demo: true})
}

// Run initializes the console and drives it from the HAL tick stream forever
// (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{Demo: true})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		s.logf("fbcon: %v", err)
		return func() error { return err }
	}
	return s.guard(s.step)
}

func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	var ticks <-chan uint64
	if ht := h.Time(); ht != nil {
		ticks = ht.Ticks()
	}
	for {
		if err := step(); err != nil {
			break
		}
		if ticks != nil {
			<-ticks
		} else {
			time.Sleep(16 * time.Millisecond)
		}
	}
	select {}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	s := &system{log: h.Logger()}

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return s, errors.New("app: no framebuffer")
	}
	d, err := hal.NewDevice(disp.Framebuffer())
	if err != nil {
		return s, err
	}
	s.d = d
	if in := h.Input(); in != nil {
		s.kbd = in.Keyboard()
	}
	s.logf("fbcon: framebuffer %dx%d", d.Width(), d.Height())

	if cfg.TermDemo {
		s.t = term.New(d, fb.Black)
		_, _ = s.t.WriteString(termBanner)
		s.drawSpinner()
		return s, s.t.Display()
	}

	ccfg := console.DefaultConfig()
	ccfg.Scale = cfg.Scale
	console.Install(func() (*console.Console, error) {
		return console.New(d, ccfg)
	})
	if err := console.With(func(c *console.Console) { c.Clear() }); err != nil {
		return s, err
	}

	banner := buildinfo.Banner(Name)
	s.logf("%s", banner)
	_ = console.With(func(c *console.Console) {
		c.SetColor(fb.Yellow, fb.Black)
		_, _ = c.WriteString(banner + "\n")
		c.SetColor(fb.LightGray, fb.Black)
		cw, ch := c.CellSize()
		_, _ = fmt.Fprintf(c, "%dx%d, %dx%d cells\n\n", d.Width(), d.Height(), cw, ch)
		c.SetColor(fb.White, fb.Black)
	})

	if cfg.Demo {
		if err := runGallery(d); err != nil {
			s.logf("fbcon: gallery: %v", err)
		}
	}

	if cfg.Script != nil {
		in := &Interpreter{Device: d, Dir: cfg.ScriptDir}
		if err := in.Run(cfg.Script); err != nil {
			s.logf("fbcon: %v", err)
			_ = console.With(func(c *console.Console) {
				fg, bg := c.Colors()
				c.SetColor(fb.LightRed, bg)
				_, _ = c.WriteString(err.Error() + "\n")
				c.SetColor(fg, bg)
			})
		}
	}

	return s, d.Present()
}

const termBanner = "\x1b[1mfbcon ANSI terminal (tinyterm)\x1b[0m\n" +
	"SGR colors and software scroll.\n\n" +
	"\x1b[31mRED\x1b[0m " +
	"\x1b[32mGREEN\x1b[0m " +
	"\x1b[33mYELLOW\x1b[0m " +
	"\x1b[34mBLUE\x1b[0m\n\n" +
	"> "

var spinner = []byte{'-', '\\', '|', '/'}

// step drains pending key events onto the screen and presents it.
func (s *system) step() error {
	if s.halted {
		return nil
	}
	s.steps++
	if s.t != nil {
		return s.termStep()
	}

	if !s.drainKeys(func(ev hal.KeyEvent) {
		_ = console.With(func(c *console.Console) { echo(c, ev) })
	}) {
		return nil
	}
	return s.d.Present()
}

func (s *system) termStep() error {
	dirty := s.drainKeys(func(ev hal.KeyEvent) {
		switch {
		case ev.Code == hal.KeyEnter:
			_, _ = s.t.WriteString("\n")
		case ev.Code == hal.KeyUnknown && ev.Rune != 0:
			_, _ = s.t.WriteString(string(ev.Rune))
		}
	})
	if s.steps%8 == 0 {
		s.spin++
		s.drawSpinner()
		dirty = true
	}
	if !dirty {
		return nil
	}
	return s.t.Display()
}

// drawSpinner paints the spinner in the top-right text cell.
func (s *system) drawSpinner() {
	col := s.d.Width()/font.Size - 1
	s.t.DrawCell(col, 0, rune(spinner[s.spin%len(spinner)]), fb.LightCyan, fb.Black)
}

// drainKeys hands every queued key press to fn without blocking and reports
// whether there was any.
func (s *system) drainKeys(fn func(hal.KeyEvent)) bool {
	if s.kbd == nil {
		return false
	}
	ch := s.kbd.Events()
	got := false
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				s.kbd = nil
				return got
			}
			if !ev.Press {
				continue
			}
			fn(ev)
			got = true
		default:
			return got
		}
	}
}

func echo(c *console.Console, ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyEnter:
		c.WriteChar('\n')
	case hal.KeyBackspace:
		c.Backspace()
	case hal.KeyTab:
		_, _ = c.WriteString("    ")
	case hal.KeyUnknown:
		if ev.Rune != 0 {
			c.WriteChar(ev.Rune)
		}
	}
}

// guard turns a panic in step into the panic screen. The system then stays
// halted with the screen intact.
func (s *system) guard(step func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				s.halted = true
				showPanic(s.log, s.d, r, debug.Stack())
			}
		}()
		return step()
	}
}

func (s *system) logf(format string, a ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, a...))
}
