//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHostKeyboardFeed(t *testing.T) {
	k := newHostKeyboard()
	if err := k.feed(strings.NewReader("hi\n\x7f")); err != nil {
		t.Fatal(err)
	}
	exp := []KeyEvent{
		{Press: true, Rune: 'h'},
		{Press: true, Rune: 'i'},
		{Code: KeyEnter, Press: true},
		{Code: KeyBackspace, Press: true},
	}
	for i, want := range exp {
		select {
		case got := <-k.Events():
			if got != want {
				t.Fatalf("event %d: expected %+v; got %+v", i, want, got)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}
}

func TestNewHostDefaults(t *testing.T) {
	h := New()
	f := h.Display().Framebuffer()
	if f.Width() != defaultWidth || f.Height() != defaultHeight || f.Format() != PixelFormatXRGB8888 {
		t.Fatalf("unexpected framebuffer %dx%d %s", f.Width(), f.Height(), f.Format())
	}
	if h.Input().Keyboard() == nil || h.Time() == nil || h.Logger() == nil {
		t.Fatal("host HAL must provide every device")
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var width int
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		width = h.Display().Framebuffer().Width()
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Enabled: true, Hz: 1000, Ticks: 3, Host: HostConfig{Width: 32, Height: 16}})
	if err != nil {
		t.Fatal(err)
	}
	if steps != 3 || width != 32 {
		t.Fatalf("expected 3 steps on a 32px framebuffer; got %d steps, width %d", steps, width)
	}
}

func TestRunHeadlessPropagatesStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000, PresentHz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the step error; got %v", err)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestFrameClock(t *testing.T) {
	c := newFrameClock(10 * time.Millisecond)
	start := time.Unix(100, 0)

	drain := func() []uint64 {
		var got []uint64
		for {
			select {
			case f := <-c.Ticks():
				got = append(got, f)
			default:
				return got
			}
		}
	}

	specs := []struct {
		at  time.Duration
		exp []uint64
	}{
		{0, []uint64{1}},
		{5 * time.Millisecond, nil},
		{15 * time.Millisecond, []uint64{2}},
		{35 * time.Millisecond, []uint64{3, 4}},
		{30 * time.Millisecond, nil},
		{39 * time.Millisecond, nil},
		{40 * time.Millisecond, []uint64{5}},
	}
	for specIndex, spec := range specs {
		c.advance(start.Add(spec.at))
		got := drain()
		if len(got) != len(spec.exp) {
			t.Fatalf("[spec %d] expected frames %v; got %v", specIndex, spec.exp, got)
		}
		for i := range got {
			if got[i] != spec.exp[i] {
				t.Fatalf("[spec %d] expected frames %v; got %v", specIndex, spec.exp, got)
			}
		}
	}
}

func TestFrameClockDropsBacklog(t *testing.T) {
	c := newFrameClock(time.Millisecond)
	start := time.Unix(100, 0)
	c.advance(start)
	c.advance(start.Add(time.Second))

	if c.frame != 1001 {
		t.Fatalf("expected frame 1001; got %d", c.frame)
	}
	if got := uint64(len(c.ch)); got+c.dropped != 1001 || got != uint64(cap(c.ch)) {
		t.Fatalf("expected a full channel and the rest dropped; got %d queued, %d dropped", got, c.dropped)
	}
	// The skipped run sits between the first frame and the newest ones.
	if first, second := <-c.Ticks(), <-c.Ticks(); first != 1 || second != 938 {
		t.Fatalf("expected frames 1 then 938 at the head; got %d, %d", first, second)
	}
}
