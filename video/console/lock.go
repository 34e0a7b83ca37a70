//go:build !(tinygo && baremetal)

package console

type irqState struct{}

func lock() irqState {
	mu.Lock()
	return irqState{}
}

func tryLock() (irqState, bool) {
	return irqState{}, mu.TryLock()
}

func unlock(irqState) {
	mu.Unlock()
}
