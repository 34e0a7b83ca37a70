package term

import (
	"image/color"

	"fbcon/video/fb"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an fb.Device to the display interface tinyterm draws on.
type fbDisplay struct {
	*fb.Device
}

func newFBDisplay(d *fb.Device) *fbDisplay {
	return &fbDisplay{Device: d}
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.FillRect(int(x), int(y), int(width), int(height), fb.FromColor(c))
	return nil
}

// SetScroll is a no-op: a linear framebuffer has no hardware scroll offset.
func (d *fbDisplay) SetScroll(line int16) {
	_ = line
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}
