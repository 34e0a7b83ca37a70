//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	// PresentHz is how often the framebuffer is pushed to an X11 window or
	// device; 0 presents after every tick.
	PresentHz int
	// Keys, when set, is read for keyboard input (typically os.Stdin).
	Keys io.Reader

	Host HostConfig
}

// RunHeadless runs the app without opening an ebiten window. The framebuffer is
// still presented when the host config selects X11 or a framebuffer device.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h, err := newHostHAL(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	if cfg.Keys != nil {
		// A blocked read cannot be cancelled, so the feeder stays outside the group.
		go func() {
			if err := h.kbd.feed(cfg.Keys); err != nil {
				h.logger.WriteLineString("hal: keys: " + err.Error())
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				h.t.advance(time.Now())
				for i := 0; i < cfg.StepBudget && step != nil; i++ {
					if err := step(); err != nil {
						return err
					}
				}
				if cfg.PresentHz <= 0 {
					if err := h.fb.Present(); err != nil {
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return errStopped
				}
			}
		}
	})

	if cfg.PresentHz > 0 {
		g.Go(func() error {
			t := time.NewTicker(time.Second / time.Duration(cfg.PresentHz))
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if err := h.fb.Present(); err != nil {
						return err
					}
				}
			}
		})
	}

	err = g.Wait()
	if errors.Is(err, errStopped) {
		return h.fb.Present()
	}
	return err
}

var errStopped = errors.New("hal: tick limit reached")
