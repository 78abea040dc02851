package image

import "errors"

// Common errors for frame buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidLayout is returned when the layout is not recognized.
	ErrInvalidLayout = errors.New("image: invalid layout")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// Plane is one component plane of a frame.
type Plane struct {
	// Pix holds the samples, row-major, Stride bytes per row.
	Pix []byte

	// Stride is the number of bytes between two rows (pitch).
	Stride int

	// Width and Height are the plane dimensions in samples.
	Width  int
	Height int
}

// Buf is a frame buffer made of one or more planes.
//
// Thread safety: Buf holds no locks. The frame-rendering path is expected
// to own a Buf while it writes to it.
type Buf struct {
	planes []Plane
	width  int
	height int
	layout Layout
}

// NewBuf creates a zeroed frame buffer with tightly packed planes.
func NewBuf(width, height int, layout Layout) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !layout.IsValid() {
		return nil, ErrInvalidLayout
	}

	planes := make([]Plane, layout.Planes())
	for i := range planes {
		w, h := layout.PlaneSize(i, width, height)
		stride := w * layout.BytesPerPixel()
		planes[i] = Plane{
			Pix:    make([]byte, stride*h),
			Stride: stride,
			Width:  w,
			Height: h,
		}
	}

	return &Buf{planes: planes, width: width, height: height, layout: layout}, nil
}

// FromRaw wraps caller-owned plane memory without copying.
// One (data, stride) pair is expected per plane; the caller must keep the
// memory valid for the lifetime of the Buf.
func FromRaw(width, height int, layout Layout, data [][]byte, strides []int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !layout.IsValid() {
		return nil, ErrInvalidLayout
	}

	n := layout.Planes()
	if len(data) < n || len(strides) < n {
		return nil, ErrDataTooSmall
	}

	planes := make([]Plane, n)
	for i := range planes {
		w, h := layout.PlaneSize(i, width, height)
		if strides[i] < layout.RowBytes(i, width) {
			return nil, ErrInvalidStride
		}
		required := strides[i]*(h-1) + layout.RowBytes(i, width)
		if len(data[i]) < required {
			return nil, ErrDataTooSmall
		}
		planes[i] = Plane{Pix: data[i], Stride: strides[i], Width: w, Height: h}
	}

	return &Buf{planes: planes, width: width, height: height, layout: layout}, nil
}

// Width returns the frame width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the frame height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Layout returns the frame layout.
func (b *Buf) Layout() Layout {
	return b.layout
}

// Plane returns plane i, or an empty Plane when i is out of range.
func (b *Buf) Plane(i int) Plane {
	if i < 0 || i >= len(b.planes) {
		return Plane{}
	}
	return b.planes[i]
}

// NumPlanes returns the number of planes.
func (b *Buf) NumPlanes() int {
	return len(b.planes)
}

// Row returns the bytes of row y of plane i, or nil when out of range.
func (b *Buf) Row(i, y int) []byte {
	p := b.Plane(i)
	if y < 0 || y >= p.Height {
		return nil
	}
	start := y * p.Stride
	return p.Pix[start : start+p.Width*b.layout.BytesPerPixel()]
}

// Clear zeroes every plane.
func (b *Buf) Clear() {
	for i := range b.planes {
		clear(b.planes[i].Pix)
	}
}

// ByteSize returns the total size of all planes in bytes.
func (b *Buf) ByteSize() int {
	n := 0
	for _, p := range b.planes {
		n += len(p.Pix)
	}
	return n
}
