package fb

import (
	"errors"
	"image/color"
	"testing"
)

// checkedMemory fails the test on any access outside its backing slice.
type checkedMemory struct {
	t      *testing.T
	pix    []uint32
	stores int
}

func newCheckedMemory(t *testing.T, n int) *checkedMemory {
	return &checkedMemory{t: t, pix: make([]uint32, n)}
}

func (m *checkedMemory) Len() int { return len(m.pix) }

func (m *checkedMemory) Load(i int) uint32 {
	m.t.Helper()
	if i < 0 || i >= len(m.pix) {
		m.t.Fatalf("load outside buffer: index %d, len %d", i, len(m.pix))
	}
	return m.pix[i]
}

func (m *checkedMemory) Store(i int, v uint32) {
	m.t.Helper()
	if i < 0 || i >= len(m.pix) {
		m.t.Fatalf("store outside buffer: index %d, len %d", i, len(m.pix))
	}
	m.pix[i] = v
	m.stores++
}

func TestNewRejectsBadGeometry(t *testing.T) {
	specs := []struct {
		w, h, strideBytes, memLen int
		want                      error
	}{
		{0, 10, 40, 100, ErrInvalidGeometry},
		{10, 0, 40, 100, ErrInvalidGeometry},
		{-1, 10, 40, 100, ErrInvalidGeometry},
		{10, 10, 42, 200, ErrMisalignedStride},
		{10, 10, 0, 200, ErrMisalignedStride},
		{10, 10, 36, 200, ErrStrideTooSmall},
		{10, 10, 48, 100, ErrShortMemory},
	}
	for specIndex, spec := range specs {
		_, err := New(NewPixels(spec.memLen), spec.w, spec.h, spec.strideBytes)
		if !errors.Is(err, spec.want) {
			t.Errorf("[spec %d] expected %v; got %v", specIndex, spec.want, err)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustNew to panic on zero width")
		}
	}()
	MustNew(NewPixels(16), 0, 4, 16)
}

func TestDrawPixelOutOfBoundsIsDropped(t *testing.T) {
	const w, h, stride = 6, 4, 8
	mem := newCheckedMemory(t, stride*h)
	d := MustNew(mem, w, h, stride*BytesPerPixel)

	for _, p := range [][2]int{{w, 0}, {0, h}, {w + 5, h + 5}, {-1, 0}, {0, -1}, {1 << 20, 1}} {
		d.DrawPixel(p[0], p[1], White)
	}
	if mem.stores != 0 {
		t.Fatalf("expected no stores for out-of-range pixels; got %d", mem.stores)
	}

	d.DrawPixel(w-1, h-1, Red)
	if got := mem.pix[(h-1)*stride+w-1]; got != uint32(Red) {
		t.Fatalf("expected last visible pixel to be %#x; got %#x", Red, got)
	}
	for x := w; x < stride; x++ {
		if mem.pix[(h-1)*stride+x] != 0 {
			t.Fatalf("padding pixel %d was written", x)
		}
	}
}

func TestClearLeavesPadding(t *testing.T) {
	const w, h, stride = 5, 3, 7
	const sentinel = 0xDEADBEEF
	mem := newCheckedMemory(t, stride*h)
	for i := range mem.pix {
		mem.pix[i] = sentinel
	}
	d := MustNew(mem, w, h, stride*BytesPerPixel)

	d.Clear(Cyan)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := d.Pixel(x, y); got != Cyan {
				t.Fatalf("pixel (%d,%d): expected %#x; got %#x", x, y, Cyan, got)
			}
		}
		for x := w; x < stride; x++ {
			if got := mem.pix[y*stride+x]; got != sentinel {
				t.Fatalf("padding (%d,%d) changed to %#x", x, y, got)
			}
		}
	}
	if mem.stores != w*h {
		t.Fatalf("expected %d stores; got %d", w*h, mem.stores)
	}
}

func TestFillRectClips(t *testing.T) {
	d := MustNew(NewPixels(10*10), 10, 10, 40)

	d.FillRect(-3, 8, 5, 10, Green)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Black
			if x < 2 && y >= 8 {
				want = Green
			}
			if got := d.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d): expected %#x; got %#x", x, y, want, got)
			}
		}
	}

	d.FillRect(2, 2, 0, 4, Red)
	d.FillRect(2, 2, 4, -1, Red)
	if d.Pixel(2, 2) != Black {
		t.Fatal("empty rectangles must not draw")
	}
}

func TestMoveRowsUp(t *testing.T) {
	const w, h = 4, 5
	d := MustNew(NewPixels(w*h), w, h, w*BytesPerPixel)
	for y := 0; y < h; y++ {
		d.FillRect(0, y, w, 1, Color(y+1))
	}

	d.MoveRowsUp(2)

	exp := []Color{3, 4, 5, 4, 5}
	for y, want := range exp {
		for x := 0; x < w; x++ {
			if got := d.Pixel(x, y); got != want {
				t.Fatalf("row %d: expected %d; got %d", y, want, got)
			}
		}
	}
}

func TestMoveRowsUpWithoutMover(t *testing.T) {
	const w, h, stride = 3, 4, 4
	mem := newCheckedMemory(t, stride*h)
	d := MustNew(mem, w, h, stride*BytesPerPixel)
	for y := 0; y < h; y++ {
		d.FillRect(0, y, w, 1, Color(10*(y+1)))
	}

	d.MoveRowsUp(1)

	for y, want := range []Color{20, 30, 40, 40} {
		if got := d.Pixel(1, y); got != want {
			t.Fatalf("row %d: expected %d; got %d", y, want, got)
		}
	}
}

func TestPresentHook(t *testing.T) {
	d := MustNew(NewPixels(4), 2, 2, 8)
	if err := d.Present(); err != nil {
		t.Fatalf("unexpected error from unset hook: %v", err)
	}

	calls := 0
	d.SetPresent(func() error { calls++; return nil })
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 present call; got %d", calls)
	}
}

func TestDisplayerSetPixel(t *testing.T) {
	d := MustNew(NewPixels(4*4), 4, 4, 16)

	if x, y := d.Size(); x != 4 || y != 4 {
		t.Fatalf("expected size 4x4; got %dx%d", x, y)
	}
	d.SetPixel(1, 2, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF})
	if got := d.Pixel(1, 2); got != 0x00123456 {
		t.Fatalf("expected 0x00123456; got %#x", got)
	}
	d.SetPixel(-1, 9, color.RGBA{R: 0xFF})
}

func TestColorConversions(t *testing.T) {
	c := RGB(0xAA, 0xBB, 0xCC)
	if c != 0x00AABBCC {
		t.Fatalf("expected 0x00AABBCC; got %#x", c)
	}
	if got := c.ToRGBA(); got != (color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}) {
		t.Fatalf("unexpected RGBA %v", got)
	}
	var img color.Color = c.ToRGBA()
	if got := FromColor(img); got != c {
		t.Fatalf("expected %#x back from image/color; got %#x", c, got)
	}
	if got := FromColor(color.NRGBAModel.Convert(c.ToRGBA())); got != c {
		t.Fatalf("expected %#x through NRGBA; got %#x", c, got)
	}
	if got := FromColor(color.Gray{Y: 0x80}); got != RGB(0x80, 0x80, 0x80) {
		t.Fatalf("unexpected gray conversion %#x", got)
	}
	if Palette[15] != White || Palette[0] != Black {
		t.Fatal("palette order changed")
	}
}
