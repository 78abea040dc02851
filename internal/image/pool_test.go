package image

import (
	"sync"
	"testing"
)

func TestPool_GetPut(t *testing.T) {
	pool := NewPool(4)

	buf1, err := pool.Get(32, 16, LayoutI420)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	buf1.Row(0, 0)[0] = 0xff
	pool.Put(buf1)

	if pool.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pool.Len())
	}

	buf2, err := pool.Get(32, 16, LayoutI420)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf2 != buf1 {
		t.Error("Get did not reuse the pooled buffer")
	}
	if buf2.Row(0, 0)[0] != 0 {
		t.Error("reused buffer was not cleared")
	}
}

func TestPool_SeparateBuckets(t *testing.T) {
	pool := NewPool(0)

	a, _ := pool.Get(8, 8, LayoutI420)
	pool.Put(a)

	b, err := pool.Get(8, 8, LayoutRV16)
	if err != nil {
		t.Fatal(err)
	}
	if b == a {
		t.Error("buffers of different layouts must not be shared")
	}
}

func TestPool_MaxPerBucket(t *testing.T) {
	pool := NewPool(2)
	for range 5 {
		buf, _ := NewBuf(4, 4, LayoutRV16)
		pool.Put(buf)
	}
	if got := pool.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestPool_PutNil(t *testing.T) {
	pool := NewPool(1)
	pool.Put(nil)
	if pool.Len() != 0 {
		t.Error("Put(nil) stored something")
	}
}

func TestPool_GetInvalid(t *testing.T) {
	pool := NewPool(1)
	if _, err := pool.Get(0, 4, LayoutRV16); err == nil {
		t.Error("Get with zero width should fail")
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(8)
	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				buf, err := pool.Get(16, 16, LayoutYV12)
				if err != nil {
					t.Error(err)
					return
				}
				pool.Put(buf)
			}
		}()
	}
	wg.Wait()

	if pool.Len() > 8 {
		t.Errorf("Len() = %d exceeds bucket limit", pool.Len())
	}
}
