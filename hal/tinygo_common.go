//go:build tinygo && baremetal

package hal

import "time"

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// serialPort is the part of machine.Serial used here; its concrete type differs
// between targets (UART or USB CDC).
type serialPort interface {
	WriteByte(c byte) error
	ReadByte() (byte, error)
	Buffered() int
}

type uartLogger struct {
	uart serialPort
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// uartKeyboard turns bytes typed on the serial console into key events.
type uartKeyboard struct {
	ch chan KeyEvent
}

func newUARTKeyboard(uart serialPort) *uartKeyboard {
	k := &uartKeyboard{ch: make(chan KeyEvent, 16)}
	go func() {
		for {
			if uart.Buffered() == 0 {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			b, err := uart.ReadByte()
			if err != nil {
				continue
			}
			select {
			case k.ch <- keyEventForRune(rune(b)):
			default:
			}
		}
	}()
	return k
}

func (k *uartKeyboard) Events() <-chan KeyEvent { return k.ch }
