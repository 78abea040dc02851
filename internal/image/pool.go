package image

import "sync"

// Pool is a thread-safe pool for reusing frame buffers.
//
// Pool groups buffers by their dimensions and layout so a render loop can
// hand a frame back once it has been displayed and get the same memory for
// the next one.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of frames with the same size and layout.
type poolKey struct {
	width  int
	height int
	layout Layout
}

// NewPool creates a new frame pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buf),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a cleared frame buffer from the pool or creates a new one.
func (p *Pool) Get(width, height int, layout Layout) (*Buf, error) {
	key := poolKey{width: width, height: height, layout: layout}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuf(width, height, layout)
}

// Put returns a frame buffer to the pool for reuse.
// If buf is nil or the bucket is full, the buffer is discarded.
func (p *Pool) Put(buf *Buf) {
	if buf == nil {
		return
	}

	key := poolKey{width: buf.width, height: buf.height, layout: buf.layout}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
