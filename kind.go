package subpic

import "strconv"

// Kind is the variant of an overlay.
type Kind uint8

const (
	// KindEmpty marks a slot that has never held an overlay, or one that
	// was rolled back after a failed reservation.
	KindEmpty Kind = iota

	// KindTimedBitmap is a run-length bitmap shown inside a time window.
	KindTimedBitmap

	// KindTextLine is a single line of text. The payload is allocated with
	// room for a terminating zero, but no renderer exists for it yet and
	// the compositor reports and skips it.
	KindTextLine
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindTimedBitmap:
		return "TimedBitmap"
	case KindTextLine:
		return "TextLine"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Renderable reports whether the compositor can draw this kind.
func (k Kind) Renderable() bool {
	return k == KindTimedBitmap
}

// allocSize returns the payload bytes to allocate for a request of size
// bytes, or false when the kind cannot hold a payload.
func (k Kind) allocSize(size int) (int, bool) {
	switch k {
	case KindTimedBitmap:
		return size, true
	case KindTextLine:
		return size + 1, true
	default:
		return 0, false
	}
}

// Status is the lifecycle state of a slot.
type Status int32

const (
	// StatusFree slots hold no payload and are available.
	StatusFree Status = iota

	// StatusReserved slots belong to a producer that is filling them.
	StatusReserved

	// StatusReady slots are visible to the selector.
	StatusReady

	// StatusDestroyed slots are retired but keep their payload buffer.
	StatusDestroyed
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusFree:
		return "Free"
	case StatusReserved:
		return "Reserved"
	case StatusReady:
		return "Ready"
	case StatusDestroyed:
		return "Destroyed"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}
