package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fbcon/hal"
	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/font"

	"tinygo.org/x/tinyfont"
)

// showPanic reports a recovered panic on the logger and on screen. The shared
// console is used when it can be locked; otherwise the text is drawn straight
// into d.
func showPanic(l hal.Logger, d *fb.Device, v any, stack []byte) {
	lines := panicLines(v, stack)
	if l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	if d == nil {
		return
	}

	if console.PanicWrite("\n" + strings.Join(lines, "\n") + "\n") {
		_ = d.Present()
		return
	}
	drawPanicScreen(d, lines)
	_ = d.Present()
}

func panicLines(v any, stack []byte) []string {
	lines := []string{
		"fbcon panic:",
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// drawPanicScreen clears d and prints lines with tinyfont, wrapping long lines
// and stopping at the bottom edge.
func drawPanicScreen(d *fb.Device, lines []string) {
	d.Clear(fb.Blue)

	const fontWidth, fontHeight, fontOffset = font.Size, font.Size, font.Size - 1
	cols := d.Width() / fontWidth
	if cols <= 0 {
		return
	}
	fg := fb.White.ToRGBA()

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > d.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font.Basic8x8, x, int16(y+fontOffset), r, fg)
				x += fontWidth
			}
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
