// Package blit decodes run-length overlay bitmaps straight into frame
// memory.
//
// The kernels trust their input only as far as memory safety requires:
// every write is clipped to the destination, a run that crosses the end of
// a bitmap row is cut there, and a stream that ends early stops the decode.
package blit

import "golang.org/x/image/math/fixed"

// Alpha levels of the three-way transparency contract.
const (
	// Transparent runs leave the destination untouched.
	Transparent uint8 = 0x00

	// Opaque runs overwrite the destination with the palette sample.
	Opaque uint8 = 0xff
)

// Table maps the four colour indices of a stream to destination samples.
type Table struct {
	// Luma is the sample written to one-byte planar destinations.
	Luma [4]uint8

	// RGB565 is the sample written to packed 16-bit destinations.
	RGB565 [4]uint16

	// Alpha selects skip (Transparent), overwrite (Opaque) or, for any
	// other value, partial transparency. Partial runs are drawn as opaque
	// until blending is implemented.
	Alpha [4]uint8
}

// draws reports whether runs of colour c write to the destination.
func (t *Table) draws(c uint8) bool {
	switch t.Alpha[c] {
	case Transparent:
		return false
	case Opaque:
		return true
	default:
		// TODO: blend partial runs against the destination instead of
		// overwriting once the alpha table carries real coverage values.
		return true
	}
}

// Rect is the placement of a bitmap in its own coordinate space.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Stats describes one decode.
type Stats struct {
	// Units is the number of run-length units consumed.
	Units int

	// Rows is the number of bitmap rows fully decoded.
	Rows int

	// Short is set when the stream ended before the last row.
	Short bool
}

// Scale returns the 26.6 factor mapping render coordinates to output
// coordinates: (out << 6) / render. A non-positive render size is treated
// as identity.
func Scale(out, render int) fixed.Int26_6 {
	if render <= 0 {
		return fixed.I(1)
	}
	return fixed.Int26_6((out << 6) / render)
}

// scaled multiplies a plain count by a 26.6 factor and truncates the
// result to whole pixels. The product is computed in int so large
// coordinates clip instead of wrapping.
func scaled(n int, f fixed.Int26_6) int {
	return n * int(f) >> 6
}
