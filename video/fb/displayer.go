package fb

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Device)(nil)

// Size reports the visible geometry for tinygo drivers consumers.
func (d *Device) Size() (x, y int16) {
	return int16(d.width), int16(d.height)
}

// SetPixel lets tinyfont and tinyterm draw onto the device.
func (d *Device) SetPixel(x, y int16, c color.RGBA) {
	d.DrawPixel(int(x), int(y), RGB(c.R, c.G, c.B))
}

// Display is Present under the drivers.Displayer name.
func (d *Device) Display() error {
	return d.Present()
}
