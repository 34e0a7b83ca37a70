//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"fbcon/app"
	"fbcon/hal"
	"fbcon/internal/config"
	"fbcon/video/fb"
	"fbcon/video/snapshot"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	appCfg := app.Config{Scale: cfg.Scale, Demo: cfg.Demo, TermDemo: cfg.TermDemo}
	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		appCfg.Script = f
		appCfg.ScriptDir = filepath.Dir(cfg.Script)
	}

	// screen shares the app's pixel memory so it can be captured on exit.
	var screen *fb.Device
	newApp := func(h hal.HAL) func() error {
		if disp := h.Display(); disp != nil {
			screen, _ = hal.NewDevice(disp.Framebuffer())
		}
		return app.NewWithConfig(h, appCfg)
	}
	host := hal.HostConfig{Width: cfg.Width, Height: cfg.Height, FBDev: cfg.FBDev, X11: cfg.X11}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      cfg.Hz,
			Ticks:   cfg.Ticks,
			Keys:    os.Stdin,
			Host:    host,
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, host)
	}

	if cfg.Snapshot != "" && screen != nil {
		if serr := snapshot.SavePNG(screen, cfg.Snapshot); serr != nil {
			err = errors.Join(err, serr)
		}
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
