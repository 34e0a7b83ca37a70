package font

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

func TestGlyphForFallsBackToQuestionMark(t *testing.T) {
	want := GlyphFor('?')
	for _, r := range []rune{0, '\t', 0x7F, 0xA9, 'é', '世', -5} {
		if got := GlyphFor(r); got != want {
			t.Errorf("GlyphFor(%q): expected the '?' glyph; got %v", r, got)
		}
	}
}

func TestGlyphForKnownCharacters(t *testing.T) {
	if GlyphFor(' ') != (Glyph{}) {
		t.Fatal("space must be blank")
	}
	if GlyphFor('A') == GlyphFor('?') {
		t.Fatal("'A' must not use the fallback glyph")
	}
	for b := byte(0x20); b <= 0x7E; b++ {
		if !Printable(b) {
			t.Fatalf("byte %#x should be printable", b)
		}
	}
	if Printable(0x1F) || Printable(0x7F) {
		t.Fatal("control bytes are not printable")
	}
}

// Row 0 of 'A' is 0x0C: with bit 0 leftmost, columns 2 and 3 are lit.
func TestBitOrderLeftmostIsBitZero(t *testing.T) {
	a := GlyphFor('A')
	exp := []bool{false, false, true, true, false, false, false, false}
	for col, want := range exp {
		if got := a.Set(col, 0); got != want {
			t.Errorf("'A' row 0 col %d: expected %v; got %v", col, want, got)
		}
	}
	// '/' leans right: its top row lights the right side only.
	slash := GlyphFor('/')
	if !slash.Set(6, 0) || slash.Set(0, 0) {
		t.Fatal("'/' top row should be lit on the right")
	}
	if a.Set(-1, 0) || a.Set(8, 0) || a.Set(0, 8) {
		t.Fatal("out-of-range cells must read unset")
	}
}

func TestReplacementDiffersFromFallback(t *testing.T) {
	if Replacement() == GlyphFor('?') || Replacement() == (Glyph{}) {
		t.Fatal("replacement glyph must be a distinct non-blank shape")
	}
}

type recordDisplay struct {
	set map[[2]int16]bool
}

func (d *recordDisplay) Size() (x, y int16) { return 64, 64 }
func (d *recordDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.set[[2]int16{x, y}] = true
}
func (d *recordDisplay) Display() error { return nil }

func TestBasic8x8Font(t *testing.T) {
	if Basic8x8.GetYAdvance() != 8 {
		t.Fatalf("expected y advance 8; got %d", Basic8x8.GetYAdvance())
	}

	specs := []struct {
		r   rune
		exp Glyph
	}{
		{'A', GlyphFor('A')},
		{' ', Glyph{}},
		{'~', GlyphFor('~')},
		{0x7F, GlyphFor('?')},
		{0xE9, GlyphFor('?')},
	}
	for specIndex, spec := range specs {
		g := Basic8x8.GetGlyph(spec.r)
		info := g.Info()
		if info.Rune != spec.r || info.XAdvance != 8 || info.YOffset != -7 {
			t.Errorf("[spec %d] %q: unexpected glyph info %+v", specIndex, spec.r, info)
			continue
		}

		d := &recordDisplay{set: map[[2]int16]bool{}}
		// Baseline at y=7 puts the glyph's top row at y=0.
		g.Draw(d, 0, 7, color.RGBA{A: 0xFF})
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if got := d.set[[2]int16{int16(col), int16(row)}]; got != spec.exp.Set(col, row) {
					t.Errorf("[spec %d] %q pixel (%d,%d): expected %v; got %v", specIndex, spec.r, col, row, spec.exp.Set(col, row), got)
				}
			}
		}
	}

	if _, w := tinyfont.LineWidth(Basic8x8, "0"); w != Size {
		t.Fatalf("expected a one-cell advance; got %d", w)
	}
}
