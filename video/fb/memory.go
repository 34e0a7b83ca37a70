package fb

import (
	"sync/atomic"
	"unsafe"
)

// PixelMemory is the storage a Device writes to, addressed in whole pixels.
//
// Implementations must make every Load and Store a single 32-bit access.
type PixelMemory interface {
	Len() int
	Load(i int) uint32
	Store(i int, v uint32)
}

// mover is implemented by memories that can shift a range in place.
type mover interface {
	Move(dst, src, n int)
}

// Pixels is a PixelMemory over a []uint32. Accesses are atomic so a presenter
// goroutine can read while a console writes, and so stores to device memory are
// never merged or elided.
type Pixels struct {
	p []uint32
}

// NewPixels allocates n zeroed pixels in Go memory.
func NewPixels(n int) *Pixels {
	if n < 0 {
		n = 0
	}
	return &Pixels{p: make([]uint32, n)}
}

// MapPixels wraps n pixels starting at a raw base address.
//
// The caller guarantees the region is mapped, 4-byte aligned and valid for the
// lifetime of the process. Nothing here can verify that.
func MapPixels(base uintptr, n int) *Pixels {
	if base == 0 || n <= 0 {
		return &Pixels{}
	}
	return &Pixels{p: unsafe.Slice((*uint32)(unsafe.Pointer(base)), n)}
}

// PixelsFromBytes reinterprets a byte region (for example an mmap'd /dev/fb0) as
// pixels. Trailing bytes that do not form a whole pixel are ignored. The layout is
// the host's native order, which is little-endian on every supported target.
func PixelsFromBytes(b []byte) *Pixels {
	n := len(b) / 4
	if n == 0 {
		return &Pixels{}
	}
	return &Pixels{p: unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), n)}
}

func (m *Pixels) Len() int { return len(m.p) }

func (m *Pixels) Load(i int) uint32 { return atomic.LoadUint32(&m.p[i]) }

func (m *Pixels) Store(i int, v uint32) { atomic.StoreUint32(&m.p[i], v) }

// Move copies n pixels from src to dst with memmove semantics: a forward overlap
// (dst < src) is walked low-to-high and a backward one high-to-low, so no source
// pixel is overwritten before it has been read.
func (m *Pixels) Move(dst, src, n int) {
	movePixels(m, dst, src, n)
}

// Snapshot copies the current contents into dst and returns the number of pixels copied.
func (m *Pixels) Snapshot(dst []uint32) int {
	n := len(dst)
	if n > len(m.p) {
		n = len(m.p)
	}
	for i := 0; i < n; i++ {
		dst[i] = atomic.LoadUint32(&m.p[i])
	}
	return n
}

func movePixels(m PixelMemory, dst, src, n int) {
	if n <= 0 || dst == src {
		return
	}
	if dst < src {
		for i := 0; i < n; i++ {
			m.Store(dst+i, m.Load(src+i))
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		m.Store(dst+i, m.Load(src+i))
	}
}
