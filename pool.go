package subpic

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/subpic/internal/alloc"
)

// Pool is a fixed-capacity set of overlay slots.
//
// Reserve is serialized by a single mutex held only for the scan and the
// claim of a slot. Publish and Retire are lock-free status stores, and
// Select reads only Ready slots, so the rendering path never blocks on
// producers.
//
// Pool must not be copied after creation.
type Pool struct {
	mu    sync.Mutex
	slots []Overlay

	alloc        Allocator
	outputWidth  int
	outputHeight int
	margin       atomic.Int64

	// Counters below are written under mu.
	allocs    int64
	reuses    int64
	releases  int64
	exhausted int64

	selector Selector
}

// NewPool creates a pool with all slots free.
func NewPool(opts ...PoolOption) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.allocator == nil {
		o.allocator = &alloc.Aligned{}
	}

	p := &Pool{
		slots:        make([]Overlay, o.capacity),
		alloc:        o.allocator,
		outputWidth:  o.outputWidth,
		outputHeight: o.outputHeight,
	}
	for i := range p.slots {
		p.slots[i].index = i
	}
	p.margin.Store(int64(o.margin))
	p.selector.pool = p
	return p
}

// Capacity returns the number of slots.
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// OutputSize returns the output dimensions the pool was configured with.
func (p *Pool) OutputSize() (int, int) {
	return p.outputWidth, p.outputHeight
}

// Slot returns slot i, or nil when i is out of range.
func (p *Pool) Slot(i int) *Overlay {
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return &p.slots[i]
}

// Margin returns the current bottom margin, MarginDisabled when off.
func (p *Pool) Margin() int {
	return int(p.margin.Load())
}

// SetMargin changes the bottom margin applied by later Publish calls.
// It is safe to call concurrently with producers.
func (p *Pool) SetMargin(margin int) {
	p.margin.Store(int64(margin))
}

// Reserve claims a slot for a new overlay with a payload of size bytes.
//
// A Destroyed slot of the same kind whose buffer is large enough is reused
// without allocating. Otherwise the first Free slot is taken, and failing
// that the first Destroyed slot, whose old buffer is released. The returned
// overlay is Reserved, placed at the origin with zero size.
//
// Errors: ErrPoolExhausted when no slot is available, ErrUnknownKind when
// kind cannot hold a payload, ErrOutOfMemory when the allocator fails and
// ErrInvalidSize for a negative size. In the last three cases any slot
// touched by the call is back to Free.
func (p *Pool) Reserve(kind Kind, size int) (*Overlay, error) {
	if size < 0 {
		Logger().Warn("subpic: negative payload size", "kind", kind, "size", size)
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	need, known := kind.allocSize(size)

	p.mu.Lock()
	defer p.mu.Unlock()

	var free, destroyed *Overlay
	for i := range p.slots {
		o := &p.slots[i]
		switch o.Status() {
		case StatusDestroyed:
			if known && o.kind == kind && len(o.payload) >= need {
				// Best case: the buffer is big enough, nothing to allocate.
				o.size = size
				o.resetPlacement()
				o.setStatus(StatusReserved)
				p.reuses++
				Logger().Debug("subpic: reusing destroyed slot",
					"slot", o.index, "kind", kind, "size", size, "capacity", len(o.payload))
				return o, nil
			}
			if destroyed == nil {
				destroyed = o
			}
		case StatusFree:
			if free == nil {
				free = o
			}
		}
	}

	if free == nil && destroyed != nil {
		destroyed.release()
		p.releases++
		free = destroyed
	}

	if free == nil {
		p.exhausted++
		Logger().Warn("subpic: overlay pool is full", "capacity", len(p.slots))
		return nil, ErrPoolExhausted
	}

	if !known {
		free.release()
		Logger().Warn("subpic: unknown overlay kind", "kind", kind, "slot", free.index)
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	buf, err := p.alloc.Alloc(need)
	if err != nil || len(buf) < need {
		free.release()
		Logger().Warn("subpic: payload allocation failed",
			"kind", kind, "size", need, "slot", free.index, "err", err)
		if err == nil {
			err = fmt.Errorf("allocator returned %d bytes", len(buf))
		}
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}

	free.payload = buf[:need]
	free.size = size
	free.kind = kind
	free.resetPlacement()
	free.setStatus(StatusReserved)
	p.allocs++
	Logger().Debug("subpic: allocated slot", "slot", free.index, "kind", kind, "size", need)
	return free, nil
}

// Publish makes a Reserved overlay visible to Select.
//
// When a non-negative margin is configured and the overlay fits above it,
// Y is forced so the overlay's bottom edge sits margin pixels above the
// bottom of the output, regardless of what the producer set.
//
// Publishing from any other state returns ErrInvalidStatus but the overlay
// is still made Ready.
func (p *Pool) Publish(o *Overlay) error {
	if o == nil {
		return fmt.Errorf("%w: nil overlay", ErrInvalidStatus)
	}

	var err error
	if st := o.Status(); st != StatusReserved {
		Logger().Warn("subpic: publish of overlay in wrong state", "slot", o.index, "status", st)
		err = fmt.Errorf("%w: publish from %v", ErrInvalidStatus, st)
	}

	if margin := p.Margin(); margin >= 0 && o.Height+margin <= p.outputHeight {
		o.Y = p.outputHeight - margin - o.Height
	}

	// Every field write above happens before this store.
	o.setStatus(StatusReady)
	return err
}

// Retire ends the visibility of an overlay, or aborts one that was never
// published. The payload buffer stays with the slot for reuse.
//
// Retiring an overlay that is neither Reserved nor Ready returns
// ErrInvalidStatus; the overlay is Destroyed either way.
func (p *Pool) Retire(o *Overlay) error {
	if o == nil {
		return fmt.Errorf("%w: nil overlay", ErrInvalidStatus)
	}

	var err error
	if st := o.Status(); st != StatusReserved && st != StatusReady {
		Logger().Warn("subpic: retire of overlay in wrong state", "slot", o.index, "status", st)
		err = fmt.Errorf("%w: retire from %v", ErrInvalidStatus, st)
	}
	o.setStatus(StatusDestroyed)
	return err
}

// Select returns the overlays visible at now using the pool's own
// selector. See Selector.Select.
func (p *Pool) Select(now time.Duration) []*Overlay {
	return p.selector.Select(now)
}

// PoolStats is a snapshot of pool occupancy and allocator activity.
type PoolStats struct {
	Capacity  int
	Free      int
	Reserved  int
	Ready     int
	Destroyed int

	// Allocs counts payload allocations, Reuses counts reservations served
	// from a Destroyed slot without allocating, and Releases counts
	// buffers dropped to repurpose a Destroyed slot.
	Allocs   int64
	Reuses   int64
	Releases int64

	// Exhausted counts failed reservations because no slot was available.
	Exhausted int64
}

// InUse returns the number of slots that are not Free.
func (s PoolStats) InUse() int {
	return s.Reserved + s.Ready + s.Destroyed
}

// Stats returns a snapshot of the pool. Status counts may be stale by the
// time the caller reads them if producers are active.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	s := PoolStats{
		Capacity:  len(p.slots),
		Allocs:    p.allocs,
		Reuses:    p.reuses,
		Releases:  p.releases,
		Exhausted: p.exhausted,
	}
	p.mu.Unlock()

	for i := range p.slots {
		switch p.slots[i].Status() {
		case StatusFree:
			s.Free++
		case StatusReserved:
			s.Reserved++
		case StatusReady:
			s.Ready++
		case StatusDestroyed:
			s.Destroyed++
		}
	}
	return s
}
