package subpic

import (
	"encoding/binary"
	"image"

	"github.com/gogpu/gputypes"
	intColor "github.com/gogpu/subpic/internal/color"
	intImage "github.com/gogpu/subpic/internal/image"
)

// Layout is the in-memory arrangement of a destination frame.
type Layout = intImage.Layout

// Layout constants.
const (
	// LayoutI420 is planar 4:2:0, Y U V.
	LayoutI420 = intImage.LayoutI420

	// LayoutIYUV is planar 4:2:0, Y U V (I420 under another FourCC).
	LayoutIYUV = intImage.LayoutIYUV

	// LayoutYV12 is planar 4:2:0, Y V U.
	LayoutYV12 = intImage.LayoutYV12

	// LayoutRV16 is packed RGB 5:6:5, little endian.
	LayoutRV16 = intImage.LayoutRV16

	// LayoutRV24 is packed 24-bit RGB, stored B G R. No overlay kernel.
	LayoutRV24 = intImage.LayoutRV24

	// LayoutRV32 is packed 32-bit RGB, stored B G R X. No overlay kernel.
	LayoutRV32 = intImage.LayoutRV32
)

// ParseLayout returns the layout with the given FourCC.
func ParseLayout(fourcc string) (Layout, bool) {
	return intImage.ParseFourCC(fourcc)
}

// Plane is one component plane of a frame.
type Plane = intImage.Plane

// Frame is a destination video frame.
//
// Besides its own size, a frame carries the render size: the coordinate
// space overlays are placed in. For planar layouts the two are expected to
// match. Packed layouts scale overlays from the render size to the frame
// size.
type Frame struct {
	buf          *intImage.Buf
	renderWidth  int
	renderHeight int
}

// NewFrame allocates a zeroed frame. The render size defaults to the frame
// size.
func NewFrame(width, height int, layout Layout) (*Frame, error) {
	buf, err := intImage.NewBuf(width, height, layout)
	if err != nil {
		return nil, err
	}
	return &Frame{buf: buf, renderWidth: width, renderHeight: height}, nil
}

// FrameFromRaw wraps caller-owned plane memory, one slice and stride per
// plane, without copying. The render size defaults to the frame size.
func FrameFromRaw(width, height int, layout Layout, planes [][]byte, strides []int) (*Frame, error) {
	buf, err := intImage.FromRaw(width, height, layout, planes, strides)
	if err != nil {
		return nil, err
	}
	return &Frame{buf: buf, renderWidth: width, renderHeight: height}, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.buf.Width()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.buf.Height()
}

// Layout returns the frame layout.
func (f *Frame) Layout() Layout {
	return f.buf.Layout()
}

// Plane returns plane i of the frame.
func (f *Frame) Plane(i int) Plane {
	return f.buf.Plane(i)
}

// SetRenderSize sets the coordinate space overlays are placed in.
// Non-positive values reset it to the frame size.
func (f *Frame) SetRenderSize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = f.Width(), f.Height()
	}
	f.renderWidth = width
	f.renderHeight = height
}

// RenderSize returns the coordinate space overlays are placed in.
func (f *Frame) RenderSize() (int, int) {
	return f.renderWidth, f.renderHeight
}

// TextureFormat returns the GPU texture format the first plane can be
// uploaded as directly, or TextureFormatUndefined if it needs conversion.
func (f *Frame) TextureFormat() gputypes.TextureFormat {
	return f.Layout().Info().TextureFormat
}

// Clear zeroes every plane.
func (f *Frame) Clear() {
	f.buf.Clear()
}

// ToImage converts the frame to a standard library image for inspection or
// encoding. Planar frames share memory with the returned *image.YCbCr;
// packed frames are converted into a new *image.RGBA.
func (f *Frame) ToImage() image.Image {
	w, h := f.Width(), f.Height()
	rect := image.Rect(0, 0, w, h)

	switch f.Layout() {
	case LayoutI420, LayoutIYUV, LayoutYV12:
		y, cb, cr := f.Plane(0), f.Plane(1), f.Plane(2)
		if f.Layout() == LayoutYV12 {
			cb, cr = cr, cb
		}
		return &image.YCbCr{
			Y:              y.Pix,
			Cb:             cb.Pix,
			Cr:             cr.Pix,
			YStride:        y.Stride,
			CStride:        cb.Stride,
			SubsampleRatio: image.YCbCrSubsampleRatio420,
			Rect:           rect,
		}
	}

	img := image.NewRGBA(rect)
	p := f.Plane(0)
	bpp := f.Layout().BytesPerPixel()
	for y := range h {
		row := p.Pix[y*p.Stride:]
		for x := range w {
			px := row[x*bpp:]
			i := img.PixOffset(x, y)
			switch f.Layout() {
			case LayoutRV16:
				c := intColor.UnpackRGB565(binary.LittleEndian.Uint16(px))
				img.Pix[i+0], img.Pix[i+1], img.Pix[i+2] = c.R, c.G, c.B
			case LayoutRV24, LayoutRV32:
				img.Pix[i+0], img.Pix[i+1], img.Pix[i+2] = px[2], px[1], px[0]
			}
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// FramePool recycles frames of identical size and layout.
//
// Thread safety: All methods are safe for concurrent use.
type FramePool struct {
	pool *intImage.Pool
}

// NewFramePool creates a pool keeping at most maxPerSize frames of each
// size and layout. 0 means unlimited.
func NewFramePool(maxPerSize int) *FramePool {
	return &FramePool{pool: intImage.NewPool(maxPerSize)}
}

// Get returns a cleared frame, reusing a pooled one when available.
func (fp *FramePool) Get(width, height int, layout Layout) (*Frame, error) {
	buf, err := fp.pool.Get(width, height, layout)
	if err != nil {
		return nil, err
	}
	return &Frame{buf: buf, renderWidth: width, renderHeight: height}, nil
}

// Put hands a frame back to the pool.
func (fp *FramePool) Put(f *Frame) {
	if f == nil {
		return
	}
	fp.pool.Put(f.buf)
}
