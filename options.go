package subpic

// DefaultCapacity is the number of slots of a pool created without
// WithCapacity.
const DefaultCapacity = 8

// MarginDisabled is the margin value that leaves overlay placement to the
// producer.
const MarginDisabled = -1

// Allocator provides payload buffers for overlay slots. Alloc must return
// a slice of exactly size bytes or an error; the pool never frees buffers
// explicitly and leaves released ones to the garbage collector.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// PoolOption configures a Pool during creation.
//
// Example:
//
//	pool := subpic.NewPool(
//	    subpic.WithCapacity(16),
//	    subpic.WithOutputSize(720, 576),
//	    subpic.WithMargin(20),
//	)
type PoolOption func(*poolOptions)

// poolOptions holds optional configuration for Pool creation.
type poolOptions struct {
	capacity     int
	outputWidth  int
	outputHeight int
	margin       int
	allocator    Allocator
}

// defaultOptions returns the default pool options.
func defaultOptions() poolOptions {
	return poolOptions{
		capacity:  DefaultCapacity,
		margin:    MarginDisabled,
		allocator: nil, // Will be set to an aligned heap allocator if nil
	}
}

// WithCapacity sets the number of slots. Values below 1 are ignored.
func WithCapacity(n int) PoolOption {
	return func(o *poolOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithOutputSize sets the size of the video output. The height is needed
// for bottom-anchored placement.
func WithOutputSize(width, height int) PoolOption {
	return func(o *poolOptions) {
		o.outputWidth = width
		o.outputHeight = height
	}
}

// WithMargin forces published overlays to sit margin pixels above the
// bottom of the output. MarginDisabled, or any negative value, turns the
// override off.
func WithMargin(margin int) PoolOption {
	return func(o *poolOptions) {
		o.margin = margin
	}
}

// WithAllocator replaces the payload allocator.
// Use this to cap payload memory or to inject failures in tests.
func WithAllocator(a Allocator) PoolOption {
	return func(o *poolOptions) {
		o.allocator = a
	}
}
