package subpic

import (
	"errors"

	intImage "github.com/gogpu/subpic/internal/image"
)

// Errors reported by the pool and the compositor. None of them is fatal:
// each one scopes to a single overlay or a single frame.
var (
	// ErrInvalidStatus is returned by Publish and Retire when the overlay
	// is in the wrong state. The transition is still applied.
	ErrInvalidStatus = errors.New("subpic: invalid overlay status")

	// ErrPoolExhausted is returned by Reserve when no slot is free or
	// reusable.
	ErrPoolExhausted = errors.New("subpic: overlay pool is full")

	// ErrOutOfMemory is returned by Reserve when the payload could not be
	// allocated. The slot is returned to the pool.
	ErrOutOfMemory = errors.New("subpic: payload allocation failed")

	// ErrUnknownKind is returned for overlay kinds without an allocator
	// (Reserve) or without a renderer (RenderBitmap).
	ErrUnknownKind = errors.New("subpic: unknown overlay kind")

	// ErrInvalidSize is returned by Reserve for negative payload sizes.
	ErrInvalidSize = errors.New("subpic: invalid payload size")

	// ErrUnknownLayout is returned when the compositor has no kernel for
	// the destination layout. Nothing is written to the frame.
	ErrUnknownLayout = errors.New("subpic: unsupported destination layout")
)

// Frame errors, shared with the internal frame buffer.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrInvalidStride is returned when a stride is shorter than a row.
	ErrInvalidStride = intImage.ErrInvalidStride

	// ErrDataTooSmall is returned when plane memory is too short.
	ErrDataTooSmall = intImage.ErrDataTooSmall
)
