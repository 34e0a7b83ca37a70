package console

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrNotInstalled is returned by the package-level functions until Install has
// registered a constructor.
var ErrNotInstalled = errors.New("console: no console installed")

// panicLockAttempts bounds how long PanicWrite spins for the lock.
const panicLockAttempts = 1 << 12

var (
	mu       sync.Mutex
	provider atomic.Value // func() (*Console, error)
	shared   atomic.Pointer[Console]

	// yieldFn runs between failed PanicWrite lock attempts.
	yieldFn = runtime.Gosched
)

// Writer routes writes to the shared console.
var Writer io.Writer = writerFunc(Write)

type writerFunc func(p []byte) (int, error)

func (fn writerFunc) Write(p []byte) (int, error) { return fn(p) }

// Install registers the constructor used for the shared console. The console is
// built on first use, not here. A console built by an earlier constructor is
// dropped, so the next use builds a fresh one from fn.
func Install(fn func() (*Console, error)) {
	st := lock()
	defer unlock(st)
	provider.Store(fn)
	shared.Store(nil)
}

func sharedLocked() (*Console, error) {
	if c := shared.Load(); c != nil {
		return c, nil
	}
	v := provider.Load()
	if v == nil {
		return nil, ErrNotInstalled
	}
	fn, _ := v.(func() (*Console, error))
	if fn == nil {
		return nil, ErrNotInstalled
	}
	c, err := fn()
	if err != nil {
		// Nothing is stored, so the next caller tries again.
		return nil, fmt.Errorf("console: init: %w", err)
	}
	if c == nil {
		return nil, errors.New("console: init returned nil console")
	}
	shared.Store(c)
	return c, nil
}

// With runs fn on the shared console while holding its lock, building the
// console first if needed. fn must not keep c or call back into this package's
// locking functions.
func With(fn func(c *Console)) error {
	st := lock()
	defer unlock(st)
	c, err := sharedLocked()
	if err != nil {
		return err
	}
	fn(c)
	return nil
}

func Write(p []byte) (n int, err error) {
	err = With(func(c *Console) { n, _ = c.Write(p) })
	return n, err
}

func Print(a ...any) (int, error) {
	return writeString(fmt.Sprint(a...))
}

func Println(a ...any) (int, error) {
	return writeString(fmt.Sprintln(a...))
}

func Printf(format string, a ...any) (int, error) {
	return writeString(fmt.Sprintf(format, a...))
}

func writeString(s string) (n int, err error) {
	err = With(func(c *Console) { n, _ = c.WriteString(s) })
	return n, err
}

// PanicWrite writes s for a fault path that may have interrupted a holder of the
// lock. It gives up after a bounded number of attempts and reports whether s was
// written.
func PanicWrite(s string) bool {
	for i := 0; i < panicLockAttempts; i++ {
		st, ok := tryLock()
		if !ok {
			if yieldFn != nil {
				yieldFn()
			}
			continue
		}
		c, err := sharedLocked()
		if err == nil {
			_, _ = c.WriteString(s)
		}
		unlock(st)
		return err == nil
	}
	return false
}
