package fb

import "testing"

func TestPixelsMoveOverlap(t *testing.T) {
	specs := []struct {
		dst, src, n int
		exp         []uint32
	}{
		{0, 2, 6, []uint32{2, 3, 4, 5, 6, 7, 6, 7}},
		{2, 0, 6, []uint32{0, 1, 0, 1, 2, 3, 4, 5}},
		{1, 1, 4, []uint32{0, 1, 2, 3, 4, 5, 6, 7}},
		{0, 4, 0, []uint32{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for specIndex, spec := range specs {
		m := NewPixels(8)
		for i := 0; i < m.Len(); i++ {
			m.Store(i, uint32(i))
		}
		m.Move(spec.dst, spec.src, spec.n)
		for i, want := range spec.exp {
			if got := m.Load(i); got != want {
				t.Errorf("[spec %d] index %d: expected %d; got %d", specIndex, i, want, got)
			}
		}
	}
}

func TestPixelsFromBytesLayout(t *testing.T) {
	buf := make([]byte, 4*3+2)
	m := PixelsFromBytes(buf)
	if m.Len() != 3 {
		t.Fatalf("expected 3 pixels; got %d", m.Len())
	}

	m.Store(1, uint32(RGB(0x11, 0x22, 0x33)))
	exp := []byte{0x33, 0x22, 0x11, 0x00}
	for i, want := range exp {
		if buf[4+i] != want {
			t.Fatalf("byte %d: expected %#x; got %#x", 4+i, want, buf[4+i])
		}
	}
}

func TestMapPixelsNilBase(t *testing.T) {
	if m := MapPixels(0, 100); m.Len() != 0 {
		t.Fatalf("expected empty memory for nil base; got %d", m.Len())
	}
	if _, err := New(MapPixels(0, 100), 10, 10, 40); err == nil {
		t.Fatal("expected New to reject an unmapped region")
	}
}

func TestPixelsSnapshot(t *testing.T) {
	m := NewPixels(4)
	m.Store(3, 9)
	dst := make([]uint32, 8)
	if n := m.Snapshot(dst); n != 4 {
		t.Fatalf("expected 4 pixels copied; got %d", n)
	}
	if dst[3] != 9 {
		t.Fatalf("expected 9; got %d", dst[3])
	}
}
