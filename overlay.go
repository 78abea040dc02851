package subpic

import (
	"sync/atomic"
	"time"
)

// Overlay is one slot of a Pool.
//
// A producer owns the exported fields between Reserve and Publish and must
// finish writing them before calling Publish. After that they are read by
// the rendering goroutine and must not change.
type Overlay struct {
	// X and Y place the top-left corner, in render coordinates.
	X, Y int

	// Width and Height are the bitmap size in pixels. They also define the
	// row boundaries of the run-length stream.
	Width, Height int

	// Start and Stop bound the presentation times at which a timed overlay
	// is shown, both inclusive.
	Start, Stop time.Duration

	// Ephemeral overlays are replaced by newer ones rather than shown next
	// to them.
	Ephemeral bool

	status  atomic.Int32
	index   int
	kind    Kind
	payload []byte // len(payload) is the allocated capacity
	size    int    // bytes requested by the producer
}

// Status returns the current lifecycle state.
func (o *Overlay) Status() Status {
	return Status(o.status.Load())
}

// Kind returns the overlay variant.
func (o *Overlay) Kind() Kind {
	return o.kind
}

// Index returns the slot position in its pool.
func (o *Overlay) Index() int {
	return o.index
}

// Payload returns the bytes requested at reservation. For text lines the
// extra terminator byte is not included.
func (o *Overlay) Payload() []byte {
	if o.payload == nil {
		return nil
	}
	return o.payload[:o.size]
}

// Capacity returns the number of payload bytes actually allocated.
func (o *Overlay) Capacity() int {
	return len(o.payload)
}

// Visible reports whether a timed overlay covers the timestamp now.
func (o *Overlay) Visible(now time.Duration) bool {
	return o.Start <= now && now <= o.Stop
}

func (o *Overlay) setStatus(s Status) {
	o.status.Store(int32(s))
}

// expire moves a Ready overlay to Destroyed. It fails if a producer changed
// the status since it was read, so a slot reused in the meantime is left
// alone.
func (o *Overlay) expire() bool {
	return o.status.CompareAndSwap(int32(StatusReady), int32(StatusDestroyed))
}

// resetPlacement clears geometry and timing for a new producer.
func (o *Overlay) resetPlacement() {
	o.X, o.Y = 0, 0
	o.Width, o.Height = 0, 0
	o.Start, o.Stop = 0, 0
	o.Ephemeral = false
}

// release drops the payload and returns the slot to its initial state.
// The status store is last so a concurrent reader never sees a free slot
// that still carries a payload.
func (o *Overlay) release() {
	o.payload = nil
	o.size = 0
	o.kind = KindEmpty
	o.setStatus(StatusFree)
}
