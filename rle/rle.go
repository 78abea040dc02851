// Package rle implements the run-length stream carried by bitmap overlays.
//
// A stream is a flat sequence of 16-bit little-endian units. Each unit packs
// a 2-bit colour index in bits [1:0] and a 14-bit run length in bits [15:2].
// Runs are laid out row-major without row terminators: a consumer derives
// row boundaries from the bitmap width alone.
package rle

import (
	"encoding/binary"
	"errors"
)

const (
	// UnitSize is the size of one encoded unit in bytes.
	UnitSize = 2

	// MaxRun is the longest run a single unit can carry.
	MaxRun = 1<<14 - 1

	// Colors is the number of addressable colour indices.
	Colors = 4
)

// ErrBadColor is returned when a colour index does not fit in two bits.
var ErrBadColor = errors.New("rle: color index out of range")

// Unit is one run-length unit.
type Unit uint16

// MakeUnit packs a run of length n of colour c.
// Lengths above MaxRun and colours above 3 are truncated to their fields.
func MakeUnit(n int, c uint8) Unit {
	return Unit(uint16(n&MaxRun)<<2 | uint16(c&0x3))
}

// Color returns the colour index of the run.
func (u Unit) Color() uint8 {
	return uint8(u & 0x3)
}

// Len returns the run length.
func (u Unit) Len() int {
	return int(u >> 2)
}

// Reader walks a byte stream unit by unit.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over buf. A trailing odd byte is ignored.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Reset points the Reader at a new stream.
func (r *Reader) Reset(buf []byte) {
	r.buf = buf
	r.off = 0
}

// Next returns the next unit. ok is false once the stream is exhausted.
func (r *Reader) Next() (u Unit, ok bool) {
	if r.off+UnitSize > len(r.buf) {
		return 0, false
	}
	u = Unit(binary.LittleEndian.Uint16(r.buf[r.off:]))
	r.off += UnitSize
	return u, true
}

// Remaining returns the number of whole units left.
func (r *Reader) Remaining() int {
	return (len(r.buf) - r.off) / UnitSize
}

// AppendRun appends a run of length n of colour c to dst, splitting it into
// as many units as needed.
func AppendRun(dst []byte, n int, c uint8) []byte {
	for n > 0 {
		l := min(n, MaxRun)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(MakeUnit(l, c)))
		n -= l
	}
	return dst
}

// Encode run-length encodes an indexed bitmap of the given width.
// pix holds one colour index per pixel, row-major; runs never cross a row
// boundary so the stream can be decoded without knowing the height.
func Encode(pix []uint8, width int) ([]byte, error) {
	if width <= 0 {
		return nil, nil
	}

	var out []byte
	for row := 0; row+width <= len(pix); row += width {
		line := pix[row : row+width]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && line[i] == line[start] {
				continue
			}
			c := line[start]
			if c >= Colors {
				return nil, ErrBadColor
			}
			out = AppendRun(out, i-start, c)
			start = i
		}
	}
	return out, nil
}
