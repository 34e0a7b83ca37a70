// Package config collects host run settings from defaults, dotenv files, FBCON_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment key this package reads.
const EnvPrefix = "FBCON_"

// Config holds the settings of a host run.
type Config struct {
	Headless bool
	Hz       int
	Ticks    uint64

	X11   bool
	FBDev string // e.g. /dev/fb0; empty selects a window back end

	Width  int
	Height int
	Scale  int

	Script   string
	Demo     bool
	TermDemo bool
	Snapshot string
}

func Default() Config {
	return Config{
		Hz:     60,
		Width:  640,
		Height: 480,
		Scale:  1,
		Demo:   true,
	}
}

// Load returns the defaults overridden by dotenv files in dir and then by the
// process environment. Of the dotenv files only the first present one is read:
// .env.local, then .env. A missing dir or file is not an error.
func Load(dir string) (Config, error) {
	file, err := readDotenv(dir)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := file[EnvPrefix+key]
		return v, ok
	}
	cfg := Default()
	if err := cfg.apply(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readDotenv(dir string) (map[string]string, error) {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return m, nil
	}
	return nil, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	var errs []error
	boolVar := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, key, v, err))
				return
			}
			*dst = b
		}
	}
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, key, v, err))
				return
			}
			*dst = n
		}
	}
	strVar := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	boolVar("HEADLESS", &c.Headless)
	intVar("HZ", &c.Hz)
	if v, ok := lookup("TICKS"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sTICKS=%q: %w", EnvPrefix, v, err))
		} else {
			c.Ticks = n
		}
	}
	boolVar("X11", &c.X11)
	strVar("FBDEV", &c.FBDev)
	intVar("WIDTH", &c.Width)
	intVar("HEIGHT", &c.Height)
	intVar("SCALE", &c.Scale)
	strVar("SCRIPT", &c.Script)
	boolVar("DEMO", &c.Demo)
	boolVar("TERM_DEMO", &c.TermDemo)
	strVar("SNAPSHOT", &c.Snapshot)
	return errors.Join(errs...)
}

// RegisterFlags binds every setting to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run without a window.")
	fs.IntVar(&c.Hz, "hz", c.Hz, "Tick rate in headless mode.")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "Stop after N ticks (0 = run forever).")
	fs.BoolVar(&c.X11, "x11", c.X11, "Present through a plain X11 window instead of ebiten.")
	fs.StringVar(&c.FBDev, "fbdev", c.FBDev, "Draw on a Linux framebuffer device such as /dev/fb0.")
	fs.IntVar(&c.Width, "width", c.Width, "Framebuffer width for window and headless back ends.")
	fs.IntVar(&c.Height, "height", c.Height, "Framebuffer height for window and headless back ends.")
	fs.IntVar(&c.Scale, "scale", c.Scale, "Console glyph scale factor.")
	fs.StringVar(&c.Script, "script", c.Script, "Run drawing commands from FILE after boot.")
	fs.BoolVar(&c.Demo, "demo", c.Demo, "Draw the shapes gallery after boot.")
	fs.BoolVar(&c.TermDemo, "term-demo", c.TermDemo, "Run the ANSI terminal demo instead of the console.")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "Write a PNG of the screen to FILE on exit.")
}

// Validate reports settings no back end can run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("config: invalid scale %d", c.Scale)
	case c.Hz <= 0:
		return fmt.Errorf("config: invalid tick rate %d", c.Hz)
	case c.X11 && c.FBDev != "":
		return errors.New("config: -x11 and -fbdev are mutually exclusive")
	case c.FBDev != "" && c.Snapshot != "":
		return errors.New("config: -snapshot needs a window or in-memory framebuffer, not -fbdev")
	}
	return nil
}
