package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatXRGB8888 is 32bpp little-endian 0xXXRRGGBB (bytes B, G, R, X).
	PixelFormatXRGB8888 PixelFormat = iota + 1
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb. Devices in this format are
	// reported but cannot back a console.
	PixelFormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return "unknown"
	}
}

// Framebuffer is linear pixel memory plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Memory() PixelMemory
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint8

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown and
// Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the console and the platform.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
