//go:build tinygo && baremetal

package hal

import (
	"machine"
	"strconv"

	"fbcon/video/fb"
)

// Framebuffer description, set at link time by the board's build script:
//
//	tinygo build -ldflags "-X fbcon/hal.fbBase=0x3c200000 -X fbcon/hal.fbWidth=1024 ..."
//
// The platform has already brought the display up and owns the mapping.
var (
	fbBase   string
	fbWidth  = "640"
	fbHeight = "480"
	fbStride string // bytes; empty means width*4
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    *uartKeyboard
	t      *tinyGoTime
}

// New returns the bare-metal HAL: a pre-mapped linear framebuffer and the
// default serial port for logs and key input.
func New() HAL {
	uart := machine.Serial
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	logger := &uartLogger{uart: uart}
	f, err := linkedFramebuffer()
	if err != nil {
		logger.WriteLineString("hal: framebuffer: " + err.Error())
	}
	return &tinyGoHAL{
		logger: logger,
		fb:     f,
		kbd:    newUARTKeyboard(uart),
		t:      newTinyGoTime(),
	}
}

func linkedFramebuffer() (*memFramebuffer, error) {
	base, err := strconv.ParseUint(fbBase, 0, 64)
	if err != nil {
		return &memFramebuffer{mem: fb.NewPixels(0)}, err
	}
	w, err := strconv.Atoi(fbWidth)
	if err != nil {
		return &memFramebuffer{mem: fb.NewPixels(0)}, err
	}
	h, err := strconv.Atoi(fbHeight)
	if err != nil {
		return &memFramebuffer{mem: fb.NewPixels(0)}, err
	}
	stride := w * fb.BytesPerPixel
	if fbStride != "" {
		if stride, err = strconv.Atoi(fbStride); err != nil {
			return &memFramebuffer{mem: fb.NewPixels(0)}, err
		}
	}
	return &memFramebuffer{
		width:  w,
		height: h,
		stride: stride,
		mem:    fb.MapPixels(uintptr(base), stride/fb.BytesPerPixel*h),
	}, nil
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time       { return h.t }
