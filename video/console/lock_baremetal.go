//go:build tinygo && baremetal

package console

import "runtime/interrupt"

// Interrupts stay masked while the lock is held so a handler printing to the
// console cannot interleave with the code it interrupted.
type irqState = interrupt.State

func lock() irqState {
	st := interrupt.Disable()
	mu.Lock()
	return st
}

func tryLock() (irqState, bool) {
	st := interrupt.Disable()
	if !mu.TryLock() {
		interrupt.Restore(st)
		return st, false
	}
	return st, true
}

func unlock(st irqState) {
	mu.Unlock()
	interrupt.Restore(st)
}
