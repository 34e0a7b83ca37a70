// Package term is an ANSI-escape-aware terminal rendered with tinyterm onto an
// fb.Device, using the same 8x8 glyphs as the console.
package term

import (
	"fbcon/video/fb"
	"fbcon/video/font"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

type Terminal struct {
	d  *fbDisplay
	bg fb.Color
	t  *tinyterm.Terminal
}

// New clears d to bg and returns a terminal writing from its top-left corner.
// d must be at least one glyph tall.
// Cells the terminal draws use its own background attribute (black until an SGR
// sequence changes it).
func New(d *fb.Device, bg fb.Color) *Terminal {
	t := &Terminal{d: newFBDisplay(d), bg: bg}
	t.Reset()
	return t
}

// Reset clears the screen and restarts the terminal at the first line.
func (t *Terminal) Reset() {
	t.t = tinyterm.NewTerminal(t.d)
	t.t.Configure(&tinyterm.Config{
		Font:              font.Basic8x8,
		FontHeight:        font.Size,
		FontOffset:        font.Size - 1,
		UseSoftwareScroll: true,
	})
	// Configure leaves the cursor on the third row. Line feeds past the last
	// row wrap it back to the top.
	if rows := t.d.Height() / font.Size; rows > 0 {
		for n := (rows - 2%rows) % rows; n > 0; n-- {
			_, _ = t.t.Write([]byte{'\n'})
		}
	}
	t.d.Clear(t.bg)
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.t.Write(p)
}

func (t *Terminal) WriteString(s string) (int, error) {
	return t.t.Write([]byte(s))
}

// DrawCell paints r in the text cell at col, row without moving the terminal's
// cursor. Cells off the screen are ignored.
func (t *Terminal) DrawCell(col, row int, r rune, fg, bg fb.Color) {
	x, y := col*font.Size, row*font.Size
	if col < 0 || row < 0 || x+font.Size > t.d.Width() || y+font.Size > t.d.Height() {
		return
	}
	t.d.FillRect(x, y, font.Size, font.Size, bg)
	tinyfont.DrawChar(t.d, font.Basic8x8, int16(x), int16(y+font.Size-1), r, fg.ToRGBA())
}

// Display flushes through the device's present hook.
func (t *Terminal) Display() error {
	return t.d.Present()
}
