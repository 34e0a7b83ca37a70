package font

import (
	"math/bits"

	"tinygo.org/x/tinyfont"
)

// Basic8x8 is the table packed as a tinyfont font, so tinyfont and tinyterm
// can render it. The baseline sits on the last glyph row.
//
// Runes 0x20-0xFF all have glyphs; bytes outside printable ASCII draw as '?'.
// Runes past 0xFF get tinyfont's blank glyph.
var Basic8x8 = newTinyFont()

// lastByte is the highest rune packed into Basic8x8. tinyterm draws each byte
// of its input as a rune, so this covers everything it can ask for.
const lastByte = 0xFF

func newTinyFont() *tinyfont.Font {
	f := &tinyfont.Font{
		BBox:     [4]int8{Size, Size, 0, -(Size - 1)},
		Glyphs:   make([]tinyfont.Glyph, 0, lastByte-first+1),
		YAdvance: Size,
	}
	for r := rune(first); r <= lastByte; r++ {
		f.Glyphs = append(f.Glyphs, tinyfont.Glyph{
			Rune:     r,
			Width:    Size,
			Height:   Size,
			XAdvance: Size,
			YOffset:  -(Size - 1),
			Bitmaps:  packRows(GlyphFor(r)),
		})
	}
	return f
}

// packRows converts g to tinyfont's row-major bitmap, where the high bit of
// each byte is the leftmost pixel.
func packRows(g Glyph) []byte {
	b := make([]byte, Size)
	for row := range g {
		b[row] = bits.Reverse8(g[row])
	}
	return b
}
