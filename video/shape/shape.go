// Package shape rasterizes lines, circles and triangles onto an fb.Device.
//
// Every point goes through Device.DrawPixel, so anything off screen (including
// negative coordinates) is dropped rather than reported.
package shape

import "fbcon/video/fb"

// Line draws from (x0, y0) to (x1, y1) inclusive with integer Bresenham.
func Line(d *fb.Device, x0, y0, x1, y1 int, c fb.Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.DrawPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle strokes a circle with the midpoint algorithm. Only one octant is walked;
// each step is mirrored into the other seven.
func Circle(d *fb.Device, cx, cy, radius int, c fb.Color) {
	if radius < 0 {
		return
	}
	x := radius
	y := 0
	err := 0
	for x >= y {
		plotOctants(d, cx, cy, x, y, c)
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// FillCircle plots every point of the bounding square within radius of the center.
func FillCircle(d *fb.Device, cx, cy, radius int, c fb.Color) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				d.DrawPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// Triangle strokes the closed path through the three vertices.
func Triangle(d *fb.Device, x0, y0, x1, y1, x2, y2 int, c fb.Color) {
	Line(d, x0, y0, x1, y1, c)
	Line(d, x1, y1, x2, y2, c)
	Line(d, x2, y2, x0, y0, c)
}

// Rect strokes the outline of a w*h rectangle.
func Rect(d *fb.Device, x, y, w, h int, c fb.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	d.FillRect(x, y, w, 1, c)
	d.FillRect(x, y+h-1, w, 1, c)
	d.FillRect(x, y, 1, h, c)
	d.FillRect(x+w-1, y, 1, h, c)
}

func plotOctants(d *fb.Device, cx, cy, x, y int, c fb.Color) {
	d.DrawPixel(cx+x, cy+y, c)
	d.DrawPixel(cx+y, cy+x, c)
	d.DrawPixel(cx-x, cy+y, c)
	d.DrawPixel(cx-y, cy+x, c)
	d.DrawPixel(cx-x, cy-y, c)
	d.DrawPixel(cx-y, cy-x, c)
	d.DrawPixel(cx+x, cy-y, c)
	d.DrawPixel(cx+y, cy-x, c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
