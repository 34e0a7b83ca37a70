// Command fbrender runs a drawing script against an in-memory framebuffer and
// writes the result as a PNG.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fbcon/app"
	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/snapshot"
)

func main() {
	var (
		scriptPath = flag.String("script", "", "Script file to run (- for stdin).")
		outPath    = flag.String("out", "", "Output PNG file.")
		width      = flag.Int("width", 640, "Framebuffer width.")
		height     = flag.Int("height", 480, "Framebuffer height.")
		scale      = flag.Int("scale", 1, "Console glyph scale factor.")
	)
	flag.Parse()

	if *scriptPath == "" || *outPath == "" {
		fatalf("usage: fbrender -script in.txt -out out.png [-width 640] [-height 480] [-scale 1]")
	}

	var (
		in  io.Reader = os.Stdin
		dir           = "."
	)
	if *scriptPath != "-" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			fatalf("open script: %v", err)
		}
		defer f.Close()
		in = f
		dir = filepath.Dir(*scriptPath)
	}

	if err := render(in, dir, *outPath, *width, *height, *scale); err != nil {
		fatalf("%v", err)
	}
}

func render(script io.Reader, dir, outPath string, width, height, scale int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	d, err := fb.New(fb.NewPixels(width*height), width, height, width*fb.BytesPerPixel)
	if err != nil {
		return err
	}
	c, err := console.New(d, console.Config{Scale: scale, FG: fb.White, BG: fb.Black})
	if err != nil {
		return err
	}
	c.Clear()

	interp := &app.Interpreter{
		Device: d,
		Dir:    dir,
		With: func(fn func(c *console.Console)) error {
			fn(c)
			return nil
		},
	}
	if err := interp.Run(script); err != nil {
		return err
	}
	return snapshot.SavePNG(d, outPath)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
