package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"fbcon/video/console"
	"fbcon/video/fb"
	"fbcon/video/shape"
	"fbcon/video/snapshot"

	"github.com/google/shlex"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("wrong number of arguments")
)

// Interpreter runs line-oriented drawing commands against a device and the
// shared console. Blank lines and '#' comments are skipped.
//
//	clear [BG]                 clear the console (optionally to a new background)
//	color FG [BG]              set the ink and the console colors
//	pixel X Y [C]
//	rect X Y W H [C]           filled rectangle
//	box X Y W H [C]            rectangle outline
//	line X0 Y0 X1 Y1 [C]
//	circle CX CY R [C]
//	fcircle CX CY R [C]
//	tri X0 Y0 X1 Y1 X2 Y2 [C]
//	print TEXT...              write TEXT to the console
//	println TEXT...            write TEXT and a newline
//	scroll [N]                 scroll the console up N lines (default 1)
//	snapshot FILE              save the screen as PNG
//	image FILE X Y             draw a PNG at X Y
//	present                    push the frame to the display
//
// Colors are VGA palette names (red, lightblue, ...), an index 0-15, or
// 0xRRGGBB. The #RRGGBB form needs quotes since '#' starts a comment.
type Interpreter struct {
	Device *fb.Device
	// With runs fn against the console; nil means console.With.
	With func(fn func(c *console.Console)) error
	// Dir resolves relative file names.
	Dir string

	ink    fb.Color
	inkSet bool
}

// Run executes every command read from r and stops at the first failing one.
func (in *Interpreter) Run(r io.Reader) error {
	if in.Device == nil {
		return errors.New("script: nil device")
	}
	if !in.inkSet {
		in.ink, in.inkSet = fb.White, true
	}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		args, err := shlex.Split(sc.Text())
		if err != nil {
			return fmt.Errorf("script:%d: %w", line, err)
		}
		if len(args) == 0 {
			continue
		}
		if err := in.exec(args[0], args[1:]); err != nil {
			return fmt.Errorf("script:%d: %s: %w", line, args[0], err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("script: read: %w", err)
	}
	return nil
}

func (in *Interpreter) exec(cmd string, args []string) error {
	d := in.Device
	switch strings.ToLower(cmd) {
	case "clear":
		if err := arity(args, 0, 1); err != nil {
			return err
		}
		var bg fb.Color
		if len(args) == 1 {
			c, err := ParseColor(args[0])
			if err != nil {
				return err
			}
			bg = c
		}
		return in.console(func(c *console.Console) {
			if len(args) == 1 {
				fg, _ := c.Colors()
				c.SetColor(fg, bg)
			}
			c.Clear()
		})

	case "color":
		if err := arity(args, 1, 2); err != nil {
			return err
		}
		fg, err := ParseColor(args[0])
		if err != nil {
			return err
		}
		in.ink = fg
		var bg fb.Color
		if len(args) == 2 {
			if bg, err = ParseColor(args[1]); err != nil {
				return err
			}
		}
		return in.console(func(c *console.Console) {
			if len(args) == 1 {
				_, bg = c.Colors()
			}
			c.SetColor(fg, bg)
		})

	case "pixel":
		v, c, err := in.shapeArgs(args, 2)
		if err != nil {
			return err
		}
		d.DrawPixel(v[0], v[1], c)

	case "rect":
		v, c, err := in.shapeArgs(args, 4)
		if err != nil {
			return err
		}
		d.FillRect(v[0], v[1], v[2], v[3], c)

	case "box":
		v, c, err := in.shapeArgs(args, 4)
		if err != nil {
			return err
		}
		shape.Rect(d, v[0], v[1], v[2], v[3], c)

	case "line":
		v, c, err := in.shapeArgs(args, 4)
		if err != nil {
			return err
		}
		shape.Line(d, v[0], v[1], v[2], v[3], c)

	case "circle":
		v, c, err := in.shapeArgs(args, 3)
		if err != nil {
			return err
		}
		shape.Circle(d, v[0], v[1], v[2], c)

	case "fcircle":
		v, c, err := in.shapeArgs(args, 3)
		if err != nil {
			return err
		}
		shape.FillCircle(d, v[0], v[1], v[2], c)

	case "tri":
		v, c, err := in.shapeArgs(args, 6)
		if err != nil {
			return err
		}
		shape.Triangle(d, v[0], v[1], v[2], v[3], v[4], v[5], c)

	case "print", "println":
		s := strings.Join(args, " ")
		if strings.EqualFold(cmd, "println") {
			s += "\n"
		}
		return in.console(func(c *console.Console) { _, _ = c.WriteString(s) })

	case "scroll":
		if err := arity(args, 0, 1); err != nil {
			return err
		}
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return fmt.Errorf("bad line count %q", args[0])
			}
			n = v
		}
		return in.console(func(c *console.Console) { c.ScrollLines(n) })

	case "snapshot":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		return snapshot.SavePNG(d, in.path(args[0]))

	case "image":
		if err := arity(args, 3, 3); err != nil {
			return err
		}
		v, err := ints(args[1:])
		if err != nil {
			return err
		}
		return snapshot.LoadPNG(d, in.path(args[0]), v[0], v[1])

	case "present":
		if err := arity(args, 0, 0); err != nil {
			return err
		}
		return d.Present()

	default:
		return ErrUnknownCommand
	}
	return nil
}

func (in *Interpreter) console(fn func(c *console.Console)) error {
	if in.With != nil {
		return in.With(fn)
	}
	return console.With(fn)
}

func (in *Interpreter) path(name string) string {
	if in.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(in.Dir, name)
}

// shapeArgs parses n integers and an optional trailing color, defaulting to the
// current ink.
func (in *Interpreter) shapeArgs(args []string, n int) ([]int, fb.Color, error) {
	if err := arity(args, n, n+1); err != nil {
		return nil, 0, err
	}
	v, err := ints(args[:n])
	if err != nil {
		return nil, 0, err
	}
	c := in.ink
	if len(args) == n+1 {
		if c, err = ParseColor(args[n]); err != nil {
			return nil, 0, err
		}
	}
	return v, c, nil
}

func arity(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%w: want %d, got %d", ErrArgCount, lo, len(args))
		}
		return fmt.Errorf("%w: want %d to %d, got %d", ErrArgCount, lo, hi, len(args))
	}
	return nil
}

func ints(args []string) ([]int, error) {
	v := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		v[i] = n
	}
	return v, nil
}

var colorNames = map[string]fb.Color{
	"black":      fb.Black,
	"blue":       fb.Blue,
	"green":      fb.Green,
	"cyan":       fb.Cyan,
	"red":        fb.Red,
	"magenta":    fb.Magenta,
	"brown":      fb.Brown,
	"lightgray":  fb.LightGray,
	"darkgray":   fb.DarkGray,
	"lightblue":  fb.LightBlue,
	"lightgreen": fb.LightGreen,
	"lightcyan":  fb.LightCyan,
	"lightred":   fb.LightRed,
	"pink":       fb.Pink,
	"yellow":     fb.Yellow,
	"white":      fb.White,
}

// ParseColor accepts a palette name, a palette index 0-15, or a #RRGGBB or
// 0xRRGGBB hex value.
func ParseColor(s string) (fb.Color, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	if c, ok := colorNames[key]; ok {
		return c, nil
	}
	hex := ""
	switch {
	case strings.HasPrefix(key, "#"):
		hex = key[1:]
	case strings.HasPrefix(key, "0x"):
		hex = key[2:]
	}
	if hex != "" {
		if len(hex) != 6 {
			return 0, fmt.Errorf("bad color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad color %q", s)
		}
		return fb.Color(v), nil
	}
	if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(fb.Palette) {
		return fb.Palette[i], nil
	}
	return 0, fmt.Errorf("bad color %q", s)
}
