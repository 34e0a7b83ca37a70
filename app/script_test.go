package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/font"
)

func newInterpreter(t *testing.T, w, h int) (*Interpreter, *console.Console) {
	t.Helper()
	d, err := fb.New(fb.NewPixels(w*h), w, h, w*fb.BytesPerPixel)
	if err != nil {
		t.Fatal(err)
	}
	c, err := console.New(d, console.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	in := &Interpreter{
		Device: d,
		With: func(fn func(c *console.Console)) error {
			fn(c)
			return nil
		},
	}
	return in, c
}

func TestParseColor(t *testing.T) {
	specs := []struct {
		in  string
		exp fb.Color
		ok  bool
	}{
		{"red", fb.Red, true},
		{"Light-Blue", fb.LightBlue, true},
		{"light_gray", fb.LightGray, true},
		{"14", fb.Yellow, true},
		{"0", fb.Black, true},
		{"0x123456", 0x123456, true},
		{"#A0B0C0", 0xA0B0C0, true},
		{"16", 0, false},
		{"#12345", 0, false},
		{"0xGGGGGG", 0, false},
		{"mauve", 0, false},
	}
	for specIndex, spec := range specs {
		got, err := ParseColor(spec.in)
		if (err == nil) != spec.ok {
			t.Errorf("[spec %d] %q: unexpected error %v", specIndex, spec.in, err)
			continue
		}
		if spec.ok && got != spec.exp {
			t.Errorf("[spec %d] %q: expected %#x; got %#x", specIndex, spec.in, spec.exp, got)
		}
	}
}

func TestScriptDrawsShapes(t *testing.T) {
	in, _ := newInterpreter(t, 32, 32)
	script := `
# ink defaults to white
pixel 31 31
color red
line 0 0 3 0
rect 4 4 2 2 blue
box 10 10 4 4 "#00FF00"
fcircle 20 20 2 yellow
tri 0 20 4 20 0 24 14
`
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}

	d := in.Device
	specs := []struct {
		x, y int
		exp  fb.Color
	}{
		{31, 31, fb.White},
		{0, 0, fb.Red},
		{3, 0, fb.Red},
		{4, 4, fb.Blue},
		{5, 5, fb.Blue},
		{6, 6, fb.Black},
		{10, 10, 0x00FF00},
		{13, 13, 0x00FF00},
		{11, 11, fb.Black},
		{20, 20, fb.Yellow},
		{22, 20, fb.Yellow},
		{0, 22, fb.Yellow},
	}
	for specIndex, spec := range specs {
		if got := d.Pixel(spec.x, spec.y); got != spec.exp {
			t.Errorf("[spec %d] pixel (%d,%d): expected %#x; got %#x", specIndex, spec.x, spec.y, spec.exp, got)
		}
	}
}

func TestScriptConsoleCommands(t *testing.T) {
	in, c := newInterpreter(t, 128, 16)
	script := `
color yellow blue
print "two  spaces" kept
println
println x
scroll 1
`
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if fg, bg := c.Colors(); fg != fb.Yellow || bg != fb.Blue {
		t.Fatalf("unexpected console colors %#x/%#x", fg, bg)
	}
	if c.Scrolls() != 1 {
		t.Fatalf("expected one scroll; got %d", c.Scrolls())
	}
	// "x" was on the second line and moved up with the scroll.
	if x, y := c.Cursor(); x != 0 || y != 16 {
		t.Fatalf("unexpected cursor (%d,%d)", x, y)
	}
	cellOK := true
	for row := 0; row < font.Size; row++ {
		for col := 0; col < font.Size; col++ {
			want := fb.Blue
			if font.GlyphFor('x').Set(col, row) {
				want = fb.Yellow
			}
			if in.Device.Pixel(col, row) != want {
				cellOK = false
			}
		}
	}
	if !cellOK {
		t.Fatal("expected 'x' in the top-left cell after the scroll")
	}

	if err := in.Run(strings.NewReader("clear red")); err != nil {
		t.Fatal(err)
	}
	if in.Device.Pixel(127, 15) != fb.Red {
		t.Fatal("clear should use the new background")
	}
	if x, y := c.Cursor(); x != 0 || y != 0 {
		t.Fatal("clear should home the cursor")
	}
}

func TestScriptScrollPastScreenClears(t *testing.T) {
	in, c := newInterpreter(t, 64, 16)
	if err := in.Run(strings.NewReader("println top\nscroll 1000000000\n")); err != nil {
		t.Fatal(err)
	}
	if c.Scrolls() != 1000000000 {
		t.Fatalf("expected every requested line counted; got %d", c.Scrolls())
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			if in.Device.Pixel(x, y) != fb.Black {
				t.Fatalf("pixel (%d,%d) should be cleared", x, y)
			}
		}
	}
	if x, y := c.Cursor(); x != 0 || y != 8 {
		t.Fatalf("scroll must not move the cursor; got (%d,%d)", x, y)
	}
}

func TestScriptErrorsCarryLineNumbers(t *testing.T) {
	specs := []struct {
		script string
		line   string
		is     error
	}{
		{"clear\nbogus 1 2", "script:2:", ErrUnknownCommand},
		{"line 1 2 3", "script:1:", ErrArgCount},
		{"\n\npixel 1 2 3 4", "script:3:", ErrArgCount},
		{"pixel a b", "script:1:", nil},
		{"circle 1 1 1 mauve", "script:1:", nil},
		{"print \"unterminated", "script:1:", nil},
		{"scroll -1", "script:1:", nil},
	}
	for specIndex, spec := range specs {
		in, _ := newInterpreter(t, 8, 8)
		err := in.Run(strings.NewReader(spec.script))
		if err == nil {
			t.Errorf("[spec %d] expected an error", specIndex)
			continue
		}
		if !strings.HasPrefix(err.Error(), spec.line) {
			t.Errorf("[spec %d] expected prefix %q; got %q", specIndex, spec.line, err)
		}
		if spec.is != nil && !errors.Is(err, spec.is) {
			t.Errorf("[spec %d] expected %v; got %v", specIndex, spec.is, err)
		}
	}
}

func TestScriptSnapshotAndImage(t *testing.T) {
	in, _ := newInterpreter(t, 16, 16)
	in.Dir = t.TempDir()

	script := "rect 0 0 4 4 green\nsnapshot out.png\nclear\nimage out.png 4 4\n"
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	d := in.Device
	if d.Pixel(4, 4) != fb.Green || d.Pixel(7, 7) != fb.Green {
		t.Fatal("image should redraw the saved rectangle at the offset")
	}
	if d.Pixel(0, 0) != fb.Black || d.Pixel(8, 8) != fb.Black {
		t.Fatal("clear should have removed the first rectangle")
	}

	err := in.Run(strings.NewReader("image " + filepath.Join(in.Dir, "missing.png") + " 0 0"))
	if err == nil {
		t.Fatal("expected an error for a missing image")
	}
}

func TestScriptNeedsDevice(t *testing.T) {
	if err := (&Interpreter{}).Run(strings.NewReader("clear")); err == nil {
		t.Fatal("expected an error without a device")
	}
}
