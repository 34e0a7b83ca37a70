package hal

import "fbcon/video/fb"

// xrgbToRGBA converts width*height pixels of stride-pixel rows into tightly
// packed RGBA bytes for image.RGBA.Pix.
func xrgbToRGBA(dst []byte, src fb.PixelMemory, width, height, stride int) {
	for y := 0; y < height; y++ {
		row := y * stride
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			c := src.Load(row + x)
			j := x * 4
			out[j+0] = byte(c >> 16)
			out[j+1] = byte(c >> 8)
			out[j+2] = byte(c)
			out[j+3] = 0xFF
		}
	}
}

// xrgbToBGRX converts rows [y0, y0+h) into the B, G, R, X byte order of a 24/32
// bit ZPixmap.
func xrgbToBGRX(dst []byte, src fb.PixelMemory, width, stride, y0, h int) {
	idx := 0
	for y := y0; y < y0+h; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			c := src.Load(row + x)
			dst[idx+0] = byte(c)
			dst[idx+1] = byte(c >> 8)
			dst[idx+2] = byte(c >> 16)
			dst[idx+3] = 0
			idx += 4
		}
	}
}
