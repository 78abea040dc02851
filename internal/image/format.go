// Package image describes destination frame buffers for subpic.
//
// It knows the memory arrangement of each supported video layout (planes,
// sample sizes, chroma subsampling) and owns the plane storage. The
// compositor only ever touches the first plane of a frame.
package image

import "github.com/gogpu/gputypes"

// Layout is the in-memory arrangement of samples in a video frame.
type Layout uint8

const (
	// LayoutI420 is planar 4:2:0, Y then U then V, 1 byte per sample.
	LayoutI420 Layout = iota

	// LayoutIYUV is the same arrangement as I420 under a different FourCC.
	LayoutIYUV

	// LayoutYV12 is planar 4:2:0, Y then V then U, 1 byte per sample.
	LayoutYV12

	// LayoutRV16 is packed RGB 5:6:5, 2 bytes per pixel, little endian.
	LayoutRV16

	// LayoutRV24 is packed RGB, 3 bytes per pixel.
	LayoutRV24

	// LayoutRV32 is packed RGB with a padding byte, 4 bytes per pixel.
	LayoutRV32

	// layoutCount is the number of layouts (for internal use).
	layoutCount
)

// LayoutInfo contains metadata about a frame layout.
type LayoutInfo struct {
	// FourCC is the four character code the layout is known by.
	FourCC string

	// Planar is true when each component lives in its own plane.
	Planar bool

	// Planes is the number of planes in a frame.
	Planes int

	// BytesPerPixel is the size of one sample of the first plane.
	BytesPerPixel int

	// ChromaShiftX and ChromaShiftY are the log2 subsampling factors of
	// the chroma planes. Zero for packed layouts.
	ChromaShiftX int
	ChromaShiftY int

	// TextureFormat is the GPU format the first plane can be uploaded as
	// without conversion, or TextureFormatUndefined when there is none.
	TextureFormat gputypes.TextureFormat
}

var layoutInfoTable = [layoutCount]LayoutInfo{
	LayoutI420: {
		FourCC:        "I420",
		Planar:        true,
		Planes:        3,
		BytesPerPixel: 1,
		ChromaShiftX:  1,
		ChromaShiftY:  1,
		TextureFormat: gputypes.TextureFormatR8Unorm,
	},
	LayoutIYUV: {
		FourCC:        "IYUV",
		Planar:        true,
		Planes:        3,
		BytesPerPixel: 1,
		ChromaShiftX:  1,
		ChromaShiftY:  1,
		TextureFormat: gputypes.TextureFormatR8Unorm,
	},
	LayoutYV12: {
		FourCC:        "YV12",
		Planar:        true,
		Planes:        3,
		BytesPerPixel: 1,
		ChromaShiftX:  1,
		ChromaShiftY:  1,
		TextureFormat: gputypes.TextureFormatR8Unorm,
	},
	LayoutRV16: {
		FourCC:        "RV16",
		Planes:        1,
		BytesPerPixel: 2,
		TextureFormat: gputypes.TextureFormatUndefined,
	},
	LayoutRV24: {
		FourCC:        "RV24",
		Planes:        1,
		BytesPerPixel: 3,
		TextureFormat: gputypes.TextureFormatUndefined,
	},
	LayoutRV32: {
		FourCC:        "RV32",
		Planes:        1,
		BytesPerPixel: 4,
		TextureFormat: gputypes.TextureFormatBGRA8Unorm,
	},
}

// Info returns the LayoutInfo for this layout.
func (l Layout) Info() LayoutInfo {
	if l >= layoutCount {
		return LayoutInfo{}
	}
	return layoutInfoTable[l]
}

// BytesPerPixel returns the sample size of the first plane.
func (l Layout) BytesPerPixel() int {
	return l.Info().BytesPerPixel
}

// IsPlanar reports whether components are stored in separate planes.
func (l Layout) IsPlanar() bool {
	return l.Info().Planar
}

// Planes returns the number of planes of a frame in this layout.
func (l Layout) Planes() int {
	return l.Info().Planes
}

// String returns the FourCC of the layout.
func (l Layout) String() string {
	if !l.IsValid() {
		return "Unknown"
	}
	return layoutInfoTable[l].FourCC
}

// IsValid returns true if the layout is a known layout.
func (l Layout) IsValid() bool {
	return l < layoutCount
}

// PlaneSize returns the dimensions of plane i for a frame of the given size.
// Chroma dimensions round up so odd sizes keep their last column and row.
func (l Layout) PlaneSize(i, width, height int) (int, int) {
	info := l.Info()
	if i == 0 || !info.Planar {
		return width, height
	}
	w := (width + (1 << info.ChromaShiftX) - 1) >> info.ChromaShiftX
	h := (height + (1 << info.ChromaShiftY) - 1) >> info.ChromaShiftY
	return w, h
}

// RowBytes calculates the number of bytes of a row of plane i.
func (l Layout) RowBytes(i, width int) int {
	w, _ := l.PlaneSize(i, width, 1)
	return w * l.BytesPerPixel()
}

// ParseFourCC returns the layout known by the given FourCC.
func ParseFourCC(s string) (Layout, bool) {
	for l := range layoutCount {
		if layoutInfoTable[l].FourCC == s {
			return l, true
		}
	}
	return layoutCount, false
}
