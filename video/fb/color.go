package fb

import "image/color"

// Color is a packed 0xAARRGGBB pixel. Alpha is carried but never blended.
type Color uint32

// The 16-color VGA palette.
const (
	Black      Color = 0x00000000
	Blue       Color = 0x000000AA
	Green      Color = 0x0000AA00
	Cyan       Color = 0x0000AAAA
	Red        Color = 0x00AA0000
	Magenta    Color = 0x00AA00AA
	Brown      Color = 0x00AA5500
	LightGray  Color = 0x00AAAAAA
	DarkGray   Color = 0x00555555
	LightBlue  Color = 0x005555FF
	LightGreen Color = 0x0055FF55
	LightCyan  Color = 0x0055FFFF
	LightRed   Color = 0x00FF5555
	Pink       Color = 0x00FF55FF
	Yellow     Color = 0x00FFFF55
	White      Color = 0x00FFFFFF
)

// Palette lists the VGA colors in their classic index order.
var Palette = [16]Color{
	Black, Blue, Green, Cyan, Red, Magenta, Brown, LightGray,
	DarkGray, LightBlue, LightGreen, LightCyan, LightRed, Pink, Yellow, White,
}

// RGB packs 8-bit channels with a zero alpha byte.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// ToRGBA returns the opaque image/color equivalent.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	if c == nil {
		return Black
	}
	if rgba, ok := c.(color.RGBA); ok {
		return RGB(rgba.R, rgba.G, rgba.B)
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
