package app

import (
	"fmt"
	"time"

	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/shape"
)

const scoreScale = 1000

type benchTest struct {
	name string
	ops  uint64
	run  func(d *fb.Device)
}

type benchResult struct {
	name    string
	elapsed time.Duration
	score   uint64
}

// runGallery times every drawing primitive on an off-screen device of the same
// geometry, prints the results on the shared console and draws one sample of
// each shape under them.
func runGallery(d *fb.Device) error {
	w, h := d.Width(), d.Height()
	scratch, err := fb.New(fb.NewPixels(w*h), w, h, w*fb.BytesPerPixel)
	if err != nil {
		return err
	}

	var (
		results []benchResult
		total   uint64
	)
	for _, test := range benchmarks(w, h) {
		elapsed := measure(func() { test.run(scratch) })
		score := scoreFromOps(test.ops, elapsed)
		results = append(results, benchResult{name: test.name, elapsed: elapsed, score: score})
		total += score
	}

	var top, cellH int
	err = console.With(func(c *console.Console) {
		fg, bg := c.Colors()
		c.SetColor(fb.LightGray, bg)
		_, _ = fmt.Fprintf(c, "%-16s %8s %9s\n", "Test", "us", "score")
		c.SetColor(fg, bg)
		for _, res := range results {
			_, _ = fmt.Fprintf(c, "%-16s %8d %9d\n", res.name, res.elapsed.Microseconds(), res.score)
		}
		c.SetColor(fb.LightCyan, bg)
		_, _ = fmt.Fprintf(c, "Total score: %d\n", total)
		c.SetColor(fg, bg)

		_, y := c.Cursor()
		_, cellH = c.CellSize()
		top = y + cellH/2
		band := showcaseHeight(h - top)
		if band == 0 {
			return
		}
		drawShowcase(d, top, band)
		for n := 0; n*cellH < band+cellH/2; n++ {
			c.WriteChar('\n')
		}
	})
	return err
}

func benchmarks(w, h int) []benchTest {
	baseOps := uint64(w * h)
	return []benchTest{
		{name: "Fill", ops: baseOps * 5, run: testFill},
		{name: "Text", ops: baseOps / 2, run: testText},
		{name: "Pixels", ops: baseOps, run: testPixels},
		{name: "Lines", ops: baseOps, run: testLines},
		{name: "Rects", ops: baseOps, run: testRects},
		{name: "Filled rects", ops: baseOps, run: testFilledRects},
		{name: "Circles", ops: baseOps, run: testCircles},
		{name: "Filled circles", ops: baseOps, run: testFilledCircles},
		{name: "Triangles", ops: baseOps, run: testTriangles},
	}
}

func measure(fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	if elapsed < time.Microsecond {
		elapsed = time.Microsecond
	}
	return elapsed
}

func scoreFromOps(ops uint64, elapsed time.Duration) uint64 {
	us := uint64(elapsed / time.Microsecond)
	if us == 0 {
		us = 1
	}
	return (ops * scoreScale) / us
}

func testFill(d *fb.Device) {
	for _, c := range []fb.Color{fb.White, fb.Red, fb.Green, fb.Blue, fb.Black} {
		d.Clear(c)
	}
}

func testText(d *fb.Device) {
	c, err := console.New(d, console.DefaultConfig())
	if err != nil {
		return
	}
	c.Clear()
	lines := []string{
		"Framebuffer benchmark\n",
		"Shapes, fills, lines, text\n",
		"The quick brown fox jumps over the lazy dog 0123456789\n",
	}
	_, cellH := c.CellSize()
	for i := 0; i*cellH < d.Height(); i++ {
		_, _ = c.WriteString(lines[i%len(lines)])
	}
}

func testPixels(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.DrawPixel(x, y, fb.RGB(uint8(x), uint8(y), uint8(x^y)))
		}
	}
}

func testLines(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	i := 0
	for x := 0; x < w; x += 4 {
		shape.Line(d, 0, 0, x, h-1, fb.Palette[1+i%15])
		i++
	}
	for y := 0; y < h; y += 4 {
		shape.Line(d, 0, 0, w-1, y, fb.Palette[1+i%15])
		i++
	}
}

func testRects(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	for i := 0; 2*i < w && 2*i < h; i += 3 {
		shape.Rect(d, i, i, w-2*i, h-2*i, fb.Palette[1+i%15])
	}
}

func testFilledRects(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	const n = 16
	i := 0
	for y := 0; y < h; y += n {
		for x := 0; x < w; x += n {
			d.FillRect(x, y, n-1, n-1, fb.Palette[i%16])
			i++
		}
	}
}

func testCircles(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	const r = 10
	i := 0
	for y := r; y < h; y += 2 * r {
		for x := r; x < w; x += 2 * r {
			shape.Circle(d, x, y, r-1, fb.Palette[1+i%15])
			i++
		}
	}
}

func testFilledCircles(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	const r = 10
	i := 0
	for y := r; y < h; y += 2 * r {
		for x := r; x < w; x += 2 * r {
			shape.FillCircle(d, x, y, r-1, fb.Palette[1+i%15])
			i++
		}
	}
}

func testTriangles(d *fb.Device) {
	d.Clear(fb.Black)
	w, h := d.Width(), d.Height()
	cx, cy := w/2, h/2
	i := 0
	for x := 0; x+8 < w; x += 8 {
		shape.Triangle(d, cx, cy, x, 0, x+8, 0, fb.Palette[1+i%15])
		shape.Triangle(d, cx, cy, x, h-1, x+8, h-1, fb.Palette[1+(i+7)%15])
		i++
	}
}

// showcaseHeight returns the size of the square sample cells given the free
// height, or 0 when there is no room for them.
func showcaseHeight(free int) int {
	const maxBand, minBand = 64, 16
	if free > maxBand {
		return maxBand
	}
	if free < minBand {
		return 0
	}
	return free
}

// drawShowcase fills a row of size x size cells starting at y with one sample
// of every primitive.
func drawShowcase(d *fb.Device, y, size int) {
	samples := []func(x int){
		func(x int) {
			for i := 0; i <= size-1; i += 4 {
				shape.Line(d, x, y+size-1, x+i, y, fb.Palette[1+(i/4)%15])
			}
		},
		func(x int) {
			r := size / 2
			for i := 0; i < r; i += 4 {
				shape.Circle(d, x+r, y+r, r-1-i, fb.Palette[9+(i/4)%7])
			}
		},
		func(x int) {
			r := size / 2
			shape.FillCircle(d, x+r, y+r, r-1, fb.LightGreen)
		},
		func(x int) {
			shape.Triangle(d, x+size/2, y, x, y+size-1, x+size-1, y+size-1, fb.Yellow)
		},
		func(x int) {
			for i := 0; 2*i < size; i += 4 {
				shape.Rect(d, x+i, y+i, size-2*i, size-2*i, fb.Palette[1+(i/4)%15])
			}
		},
		func(x int) {
			stripe := size / 4
			for i := 0; i < 4; i++ {
				d.FillRect(x, y+i*stripe, size, stripe, fb.Palette[12+i])
			}
		},
	}

	gap := size / 4
	x := gap
	for _, draw := range samples {
		if x+size > d.Width() {
			break
		}
		draw(x)
		x += size + gap
	}
}
