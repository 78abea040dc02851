// Package alloc hands out aligned payload buffers for overlay slots.
package alloc

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// Alignment is the byte boundary every payload starts on.
const Alignment = 16

// ErrTooLarge is returned when a request exceeds the allocator limit.
var ErrTooLarge = errors.New("alloc: request exceeds limit")

// ErrNegativeSize is returned for negative requests.
var ErrNegativeSize = errors.New("alloc: negative size")

// Aligned allocates 16-byte aligned byte slices from the Go heap.
//
// The Go heap does not move objects, so an offset computed once stays valid
// for the life of the slice. A non-zero Limit turns oversized requests into
// ErrTooLarge instead of letting the runtime abort on exhaustion.
//
// Thread safety: Alloc may be called concurrently.
type Aligned struct {
	// Limit is the largest request served, 0 means unlimited.
	Limit int

	allocs atomic.Int64
	bytes  atomic.Int64
}

// Alloc returns a zeroed slice of exactly size bytes whose first element is
// 16-byte aligned. The capacity is clipped to size.
func (a *Aligned) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrNegativeSize
	}
	if a.Limit > 0 && size > a.Limit {
		return nil, ErrTooLarge
	}

	raw := make([]byte, size+Alignment-1)
	off := AlignOffset(raw)
	buf := raw[off : off+size : off+size]

	a.allocs.Add(1)
	a.bytes.Add(int64(size))
	return buf, nil
}

// Allocs returns the number of successful allocations.
func (a *Aligned) Allocs() int64 {
	return a.allocs.Load()
}

// Bytes returns the total number of bytes handed out.
func (a *Aligned) Bytes() int64 {
	return a.bytes.Load()
}

// AlignOffset returns how many leading bytes of b to skip so the remainder
// starts on an Alignment boundary.
func AlignOffset(b []byte) int {
	if cap(b) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return int((Alignment - addr%Alignment) % Alignment)
}

// IsAligned reports whether b starts on an Alignment boundary.
func IsAligned(b []byte) bool {
	return AlignOffset(b) == 0
}
