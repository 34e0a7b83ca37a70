// Package console renders a scrolling text console onto an fb.Device using the
// packaged 8x8 font.
//
// A Console is a two-coordinate state machine (the cursor, in pixels). It is not
// safe for concurrent use; the process-wide instance in this package is guarded
// by a lock (see With).
package console

import (
	"errors"
	"fmt"

	"fbcon/video/fb"
	"fbcon/video/font"
)

var ErrInvalidScale = errors.New("console: scale must be positive")

// Config fixes a console's geometry and initial colors.
type Config struct {
	// Scale multiplies each glyph bit into a Scale x Scale block. 0 means 1.
	Scale int
	// Spacing is the horizontal gap in pixels left after each glyph.
	Spacing int
	FG      fb.Color
	BG      fb.Color
}

// DefaultConfig is white on black at scale 1.
func DefaultConfig() Config {
	return Config{Scale: 1, FG: fb.White, BG: fb.Black}
}

type Console struct {
	d *fb.Device

	scale   int
	spacing int
	cellW   int
	cellH   int

	x, y   int
	fg, bg fb.Color

	scrolls int
}

// New returns a console drawing onto d with the cursor at the top-left corner.
// The screen is not cleared.
func New(d *fb.Device, cfg Config) (*Console, error) {
	if d == nil {
		return nil, errors.New("console: nil device")
	}
	if cfg.Scale < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidScale, cfg.Scale)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if cfg.Spacing < 0 {
		cfg.Spacing = 0
	}
	return &Console{
		d:       d,
		scale:   cfg.Scale,
		spacing: cfg.Spacing,
		cellW:   font.Size * cfg.Scale,
		cellH:   font.Size * cfg.Scale,
		fg:      cfg.FG,
		bg:      cfg.BG,
	}, nil
}

func (c *Console) Device() *fb.Device { return c.d }

// Cursor reports the pixel position the next glyph will be drawn at, before any
// wrap or scroll that glyph may trigger.
func (c *Console) Cursor() (x, y int) { return c.x, c.y }

// CellSize is the scaled glyph size in pixels.
func (c *Console) CellSize() (w, h int) { return c.cellW, c.cellH }

// Scrolls is the number of ScrollUp calls since construction.
func (c *Console) Scrolls() int { return c.scrolls }

// SetColor affects glyphs drawn from now on only.
func (c *Console) SetColor(fg, bg fb.Color) {
	c.fg, c.bg = fg, bg
}

func (c *Console) Colors() (fg, bg fb.Color) { return c.fg, c.bg }

// Clear fills the screen with the background color and homes the cursor.
func (c *Console) Clear() {
	c.d.Clear(c.bg)
	c.x, c.y = 0, 0
}

// WriteChar draws r at the cursor, unknown runes rendering as '?'.
func (c *Console) WriteChar(r rune) {
	switch r {
	case '\n':
		c.newline()
	case '\r':
		c.x = 0
	default:
		c.put(font.GlyphFor(r))
	}
}

// WriteByte is the byte-oriented form of WriteChar: anything outside printable
// ASCII other than '\n' and '\r' draws the replacement glyph. It never fails.
func (c *Console) WriteByte(b byte) error {
	switch {
	case b == '\n':
		c.newline()
	case b == '\r':
		c.x = 0
	case font.Printable(b):
		c.put(font.GlyphFor(rune(b)))
	default:
		c.put(font.Replacement())
	}
	return nil
}

func (c *Console) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		_ = c.WriteByte(s[i])
	}
	return len(s), nil
}

func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		_ = c.WriteByte(b)
	}
	return len(p), nil
}

// Backspace steps the cursor back one cell on the current line and blanks that
// cell. At the start of a line it does nothing.
func (c *Console) Backspace() {
	step := c.cellW + c.spacing
	if c.x < step {
		return
	}
	c.x -= step
	c.d.FillRect(c.x, c.y, c.cellW, c.cellH, c.bg)
}

// ScrollUp moves every text line one line toward the top and blanks the bottom
// line with the background color.
func (c *Console) ScrollUp() {
	c.scrolls++
	h := c.d.Height()
	if c.cellH >= h {
		c.d.Clear(c.bg)
		return
	}
	c.d.MoveRowsUp(c.cellH)
	c.d.FillRect(0, h-c.cellH, c.d.Width(), c.cellH, c.bg)
}

// ScrollLines scrolls up n lines. Scrolling a full screen or more clears it
// once instead; Scrolls still counts n. The cursor does not move.
func (c *Console) ScrollLines(n int) {
	if n <= 0 {
		return
	}
	if rows := (c.d.Height() + c.cellH - 1) / c.cellH; n >= rows {
		c.scrolls += n
		c.d.Clear(c.bg)
		return
	}
	for i := 0; i < n; i++ {
		c.ScrollUp()
	}
}

func (c *Console) newline() {
	c.x = 0
	c.y += c.cellH
}

func (c *Console) put(g font.Glyph) {
	if c.x > 0 && c.x+c.cellW > c.d.Width() {
		c.newline()
	}
	if h := c.d.Height(); c.y+c.cellH > h {
		// One scroll per line that went past the bottom.
		c.ScrollLines((c.y + c.cellH - h + c.cellH - 1) / c.cellH)
		c.y = h - c.cellH
		if c.y < 0 {
			c.y = 0
		}
	}
	c.blit(g)
	c.x += c.cellW + c.spacing
}

func (c *Console) blit(g font.Glyph) {
	s := c.scale
	for row := 0; row < font.Size; row++ {
		for col := 0; col < font.Size; col++ {
			clr := c.bg
			if g.Set(col, row) {
				clr = c.fg
			}
			if s == 1 {
				c.d.DrawPixel(c.x+col, c.y+row, clr)
				continue
			}
			c.d.FillRect(c.x+col*s, c.y+row*s, s, s, clr)
		}
	}
}
