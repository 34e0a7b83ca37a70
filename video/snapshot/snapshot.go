// Package snapshot copies framebuffer contents to and from ordinary images, for
// PNG capture on hosts and for tests.
package snapshot

import (
	"fmt"
	"image"

	"fbcon/video/fb"

	"github.com/fogleman/gg"
)

// Image returns an opaque RGBA copy of the visible area of d.
func Image(d *fb.Device) *image.RGBA {
	w, h := d.Width(), d.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := d.Pixel(x, y)
			i := x * 4
			row[i+0] = c.R()
			row[i+1] = c.G()
			row[i+2] = c.B()
			row[i+3] = 0xFF
		}
	}
	return img
}

// SavePNG writes the visible area of d to path.
func SavePNG(d *fb.Device, path string) error {
	dc := gg.NewContextForRGBA(Image(d))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}

// Blit draws img onto d with its top-left corner at (x, y). Alpha is dropped;
// pixels outside d are clipped.
func Blit(d *fb.Device, img image.Image, x, y int) {
	b := img.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			d.DrawPixel(x+sx-b.Min.X, y+sy-b.Min.Y, fb.FromColor(img.At(sx, sy)))
		}
	}
}

// LoadPNG reads a PNG file and blits it onto d at (x, y).
func LoadPNG(d *fb.Device, path string, x, y int) error {
	img, err := gg.LoadPNG(path)
	if err != nil {
		return fmt.Errorf("snapshot: load %s: %w", path, err)
	}
	Blit(d, img, x, y)
	return nil
}
