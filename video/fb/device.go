// Package fb owns a linear 32-bit framebuffer and exposes bounds-checked pixel,
// rectangle and clear operations on it. Everything above it (glyphs, shapes, the
// text console) draws exclusively through DrawPixel or FillRect.
package fb

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one packed 0xAARRGGBB pixel.
const BytesPerPixel = 4

var (
	ErrInvalidGeometry  = errors.New("fb: width and height must be positive")
	ErrMisalignedStride = errors.New("fb: stride is not a multiple of the pixel size")
	ErrStrideTooSmall   = errors.New("fb: stride is narrower than the visible width")
	ErrShortMemory      = errors.New("fb: pixel memory is smaller than stride*height")
)

// Device is the single owner of a framebuffer region.
//
// Writes outside [0,width)x[0,height) are dropped without error. The backing memory
// is never exposed; all access goes through the methods below.
type Device struct {
	_ [0]func() // not comparable; pass by pointer.

	mem    PixelMemory
	width  int
	height int
	stride int // pixels per row in memory

	present func() error
}

// New validates the geometry and returns a device drawing into mem.
func New(mem PixelMemory, width, height, strideBytes int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrInvalidGeometry, width, height)
	}
	if strideBytes <= 0 || strideBytes%BytesPerPixel != 0 {
		return nil, fmt.Errorf("%w (stride %d bytes)", ErrMisalignedStride, strideBytes)
	}
	stride := strideBytes / BytesPerPixel
	if stride < width {
		return nil, fmt.Errorf("%w (stride %d px, width %d px)", ErrStrideTooSmall, stride, width)
	}
	if mem == nil || mem.Len() < stride*height {
		n := 0
		if mem != nil {
			n = mem.Len()
		}
		return nil, fmt.Errorf("%w (have %d px, need %d px)", ErrShortMemory, n, stride*height)
	}
	return &Device{mem: mem, width: width, height: height, stride: stride}, nil
}

// MustNew is New for boot paths where a bad geometry leaves nothing sensible to do.
func MustNew(mem PixelMemory, width, height, strideBytes int) *Device {
	d, err := New(mem, width, height, strideBytes)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Device) Width() int        { return d.width }
func (d *Device) Height() int       { return d.height }
func (d *Device) StridePixels() int { return d.stride }

// DrawPixel stores c at (x, y). Out-of-range coordinates are ignored.
func (d *Device) DrawPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.mem.Store(y*d.stride+x, uint32(c))
}

// Pixel reads back (x, y); out-of-range coordinates read as 0.
func (d *Device) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0
	}
	return Color(d.mem.Load(y*d.stride + x))
}

// FillRect paints a w*h rectangle with its top-left corner at (x, y).
// Cells outside the screen are clipped exactly as DrawPixel would drop them.
func (d *Device) FillRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := clamp(x, 0, d.width), clamp(y, 0, d.height)
	x1, y1 := clamp(x+w, 0, d.width), clamp(y+h, 0, d.height)
	for py := y0; py < y1; py++ {
		row := py * d.stride
		for px := x0; px < x1; px++ {
			d.mem.Store(row+px, uint32(c))
		}
	}
}

// Clear fills the visible area. Row padding past width is left untouched.
func (d *Device) Clear(c Color) {
	d.FillRect(0, 0, d.width, d.height, c)
}

// MoveRowsUp shifts raster rows [rows, height) to [0, height-rows). The rows at the
// bottom keep their old contents; callers blank them. rows >= height is a no-op.
func (d *Device) MoveRowsUp(rows int) {
	if rows <= 0 || rows >= d.height {
		return
	}
	dst, src, n := 0, rows*d.stride, (d.height-rows)*d.stride
	if mv, ok := d.mem.(mover); ok {
		mv.Move(dst, src, n)
		return
	}
	movePixels(d.mem, dst, src, n)
}

// SetPresent installs the hook Present calls to push pixels to a display.
func (d *Device) SetPresent(fn func() error) { d.present = fn }

// Present flushes the framebuffer when the back end needs an explicit flush.
// Memory-mapped scanout needs none, so an unset hook returns nil.
func (d *Device) Present() error {
	if d.present == nil {
		return nil
	}
	return d.present()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
