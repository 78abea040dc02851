package alloc

import (
	"errors"
	"sync"
	"testing"
)

func TestAligned_Alloc(t *testing.T) {
	var a Aligned
	for _, size := range []int{0, 1, 15, 16, 17, 40, 4096} {
		buf, err := a.Alloc(size)
		if err != nil {
			t.Fatalf("Alloc(%d) error = %v", size, err)
		}
		if len(buf) != size || cap(buf) != size {
			t.Errorf("Alloc(%d) len=%d cap=%d", size, len(buf), cap(buf))
		}
		if size > 0 && !IsAligned(buf) {
			t.Errorf("Alloc(%d) is not %d-byte aligned", size, Alignment)
		}
		if buf == nil {
			t.Errorf("Alloc(%d) returned nil slice", size)
		}
	}
	if got := a.Allocs(); got != 7 {
		t.Errorf("Allocs() = %d, want 7", got)
	}
	if got := a.Bytes(); got != 0+1+15+16+17+40+4096 {
		t.Errorf("Bytes() = %d", got)
	}
}

func TestAligned_Limit(t *testing.T) {
	a := Aligned{Limit: 64}
	if _, err := a.Alloc(65); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Alloc(65) error = %v, want ErrTooLarge", err)
	}
	if _, err := a.Alloc(-1); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("Alloc(-1) error = %v, want ErrNegativeSize", err)
	}
	if a.Allocs() != 0 {
		t.Errorf("failed requests counted: Allocs() = %d", a.Allocs())
	}
}

func TestAlignOffset(t *testing.T) {
	raw := make([]byte, 64)
	off := AlignOffset(raw)
	if off < 0 || off >= Alignment {
		t.Fatalf("AlignOffset = %d", off)
	}
	if !IsAligned(raw[off:]) {
		t.Error("raw[off:] is not aligned")
	}
	if AlignOffset(nil) != 0 {
		t.Error("AlignOffset(nil) != 0")
	}
}

func TestAligned_Concurrent(t *testing.T) {
	var a Aligned
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := a.Alloc(32); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if a.Allocs() != 800 {
		t.Errorf("Allocs() = %d, want 800", a.Allocs())
	}
}
