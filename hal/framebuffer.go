package hal

import (
	"errors"
	"fmt"

	"fbcon/video/fb"
)

// PixelMemory is the storage behind a Framebuffer.
type PixelMemory = fb.PixelMemory

var ErrUnsupportedFormat = errors.New("hal: unsupported pixel format")

// memFramebuffer is an XRGB8888 framebuffer over already-mapped pixel memory.
type memFramebuffer struct {
	width  int
	height int
	stride int // bytes
	mem    *fb.Pixels

	present func() error
}

func newMemFramebuffer(width, height int) *memFramebuffer {
	return &memFramebuffer{
		width:  width,
		height: height,
		stride: width * fb.BytesPerPixel,
		mem:    fb.NewPixels(width * height),
	}
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatXRGB8888 }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Memory() PixelMemory { return f.mem }

func (f *memFramebuffer) Present() error {
	if f.present == nil {
		return nil
	}
	return f.present()
}

// NewDevice builds the drawing device for f and routes Device.Present to f.
func NewDevice(f Framebuffer) (*fb.Device, error) {
	if f == nil {
		return nil, errors.New("hal: no framebuffer")
	}
	if f.Format() != PixelFormatXRGB8888 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Format())
	}
	d, err := fb.New(f.Memory(), f.Width(), f.Height(), f.StrideBytes())
	if err != nil {
		return nil, fmt.Errorf("hal: framebuffer device: %w", err)
	}
	d.SetPresent(f.Present)
	return d, nil
}
