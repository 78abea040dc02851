package subpic

import "time"

// Selector builds the per-frame chain of visible overlays.
//
// The chain is a slice of slot pointers rebuilt on every call; the backing
// array is kept between calls so steady-state selection does not allocate.
// A returned chain is only valid until the next Select on the same
// Selector.
//
// A Selector must be used from a single goroutine.
type Selector struct {
	pool  *Pool
	chain []*Overlay
}

// NewSelector returns a selector over p with its own scratch space.
func NewSelector(p *Pool) *Selector {
	return &Selector{pool: p}
}

// Select returns the overlays to draw for a frame presented at now.
//
// Only Ready slots are considered, in slot order. Overlays that are not
// timed bitmaps are always included. A timed bitmap is retired once now is
// past its Stop, skipped while now is before its Start, and included
// otherwise, with one exception for ephemeral overlays:
//
// At most one ephemeral overlay is held back as the candidate. A later
// ephemeral overlay with a strictly earlier Start pushes the candidate into
// the chain and takes its place; any other one goes straight into the
// chain. The earliest Start among the overlays put into the chain is
// tracked as the threshold. After the scan the candidate is retired if it
// started before that threshold, and otherwise placed at the front of the
// chain.
func (s *Selector) Select(now time.Duration) []*Overlay {
	p := s.pool
	chain := s.chain[:0]

	var (
		candidate    *Overlay
		threshold    time.Duration
		hasThreshold bool
	)
	push := func(o *Overlay) {
		chain = append(chain, o)
		if !hasThreshold || o.Start < threshold {
			threshold = o.Start
			hasThreshold = true
		}
	}

	for i := range p.slots {
		o := &p.slots[i]
		if o.Status() != StatusReady {
			continue
		}

		if o.kind != KindTimedBitmap {
			chain = append(chain, o)
			continue
		}

		if now > o.Stop {
			o.expire()
			continue
		}
		if now < o.Start {
			continue
		}

		if o.Ephemeral {
			if candidate == nil {
				candidate = o
				continue
			}
			if o.Start < candidate.Start {
				push(candidate)
				candidate = o
				continue
			}
		}
		push(o)
	}

	if candidate != nil {
		if hasThreshold && candidate.Start < threshold {
			candidate.expire()
		} else {
			chain = append(chain, nil)
			copy(chain[1:], chain)
			chain[0] = candidate
		}
	}

	// Drop references left over from a longer previous chain.
	clear(chain[len(chain):cap(chain)])
	s.chain = chain
	return chain
}
