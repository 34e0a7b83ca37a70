//go:build !tinygo

package hal

import "time"

// framePeriod is one 60 Hz frame, the rate the host runners present at.
const framePeriod = time.Second / 60

// frameClock publishes a frame number for every frame period of wall time that
// passes between advance calls. Frames published while the channel is full are
// dropped and counted.
type frameClock struct {
	ch      chan uint64
	period  time.Duration
	frame   uint64
	dropped uint64

	last time.Time
	acc  time.Duration
}

func newFrameClock(period time.Duration) *frameClock {
	if period <= 0 {
		period = framePeriod
	}
	return &frameClock{ch: make(chan uint64, 64), period: period}
}

func (c *frameClock) Ticks() <-chan uint64 { return c.ch }

// advance accounts for the time up to now. The first call publishes one frame;
// a clock that went backwards restarts from now.
func (c *frameClock) advance(now time.Time) {
	if c.last.IsZero() {
		c.last = now
		c.publish(1)
		return
	}
	if now.Before(c.last) {
		c.last, c.acc = now, 0
		return
	}
	c.acc += now.Sub(c.last)
	c.last = now
	n := uint64(c.acc / c.period)
	c.acc %= c.period
	c.publish(n)
}

func (c *frameClock) publish(n uint64) {
	if room := uint64(cap(c.ch)); n > room {
		c.frame += n - room
		c.dropped += n - room
		n = room
	}
	for ; n > 0; n-- {
		c.frame++
		select {
		case c.ch <- c.frame:
		default:
			c.dropped++
		}
	}
}
