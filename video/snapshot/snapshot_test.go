package snapshot

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"fbcon/video/fb"
)

func TestImageColors(t *testing.T) {
	d := fb.MustNew(fb.NewPixels(8*4), 3, 4, 8*fb.BytesPerPixel)
	d.Clear(fb.Blue)
	d.DrawPixel(2, 3, fb.RGB(0x12, 0x34, 0x56))

	img := Image(d)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 4 {
		t.Fatalf("expected 3x4 image; got %v", b)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 0xAA, A: 0xFF}) {
		t.Fatalf("unexpected background %v", got)
	}
	if got := img.RGBAAt(2, 3); got != (color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}

func TestSaveAndLoadPNG(t *testing.T) {
	src := fb.MustNew(fb.NewPixels(4*4), 4, 4, 16)
	src.Clear(fb.Red)
	src.DrawPixel(1, 2, fb.Yellow)

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SavePNG(src, path); err != nil {
		t.Fatal(err)
	}

	dst := fb.MustNew(fb.NewPixels(6*6), 6, 6, 24)
	if err := LoadPNG(dst, path, 2, 2); err != nil {
		t.Fatal(err)
	}
	if dst.Pixel(0, 0) != fb.Black {
		t.Fatal("pixels outside the blit must be untouched")
	}
	if dst.Pixel(2, 2) != fb.Red || dst.Pixel(3, 4) != fb.Yellow {
		t.Fatalf("unexpected blit result %#x %#x", dst.Pixel(2, 2), dst.Pixel(3, 4))
	}
	if err := LoadPNG(dst, filepath.Join(t.TempDir(), "missing.png"), 0, 0); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestBlitClipsAndHonorsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	for y := 10; y < 12; y++ {
		for x := 10; x < 13; x++ {
			img.Set(x, y, color.RGBA{G: 0xFF, A: 0xFF})
		}
	}
	d := fb.MustNew(fb.NewPixels(4), 2, 2, 8)
	Blit(d, img, -1, 1)
	if d.Pixel(0, 1) != fb.RGB(0, 0xFF, 0) || d.Pixel(1, 1) != fb.RGB(0, 0xFF, 0) {
		t.Fatal("expected the visible part of the image")
	}
	if d.Pixel(0, 0) != 0 {
		t.Fatal("row above the blit must be untouched")
	}
}
