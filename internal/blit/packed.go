package blit

import (
	"encoding/binary"

	"github.com/gogpu/subpic/rle"
	"golang.org/x/image/math/fixed"
)

// Packed draws a bitmap into a packed 16-bit plane with nearest-neighbour
// scaling.
//
// sx and sy are the 26.6 factors from render to output coordinates (see
// Scale). The origin, every run length and every row index are scaled and
// then truncated to whole pixels. When one bitmap row covers several output
// rows, each decoded run is written to all of them.
func Packed(dst []byte, stride, width, height int, r Rect, sx, sy fixed.Int26_6, src []byte, t *Table) Stats {
	var st Stats
	rd := rle.NewReader(src)

	ox := scaled(r.X, sx)
	oy := scaled(r.Y, sy)

	for row := range r.Height {
		y0 := oy + scaled(row, sy)
		y1 := oy + scaled(row+1, sy)
		if y1 <= y0 {
			// Downscaled rows still land on one output row.
			y1 = y0 + 1
		}
		y0, y1 = clip(y0, y1, height)

		// ax is the running x position in 26.6 units.
		var ax int
		for x := 0; x < r.Width; {
			u, ok := rd.Next()
			if !ok {
				st.Short = true
				return st
			}
			st.Units++

			n := min(u.Len(), r.Width-x)
			c := u.Color()
			a0 := ax
			ax += n * int(sx)
			x += n

			if n == 0 || !t.draws(c) {
				continue
			}
			x0, x1 := clip(ox+a0>>6, ox+ax>>6, width)
			if x0 >= x1 {
				continue
			}
			for dy := y0; dy < y1; dy++ {
				line := dy * stride
				fill16(dst[line+2*x0:line+2*x1], t.RGB565[c])
			}
		}
		st.Rows++
	}
	return st
}

func fill16(span []byte, v uint16) {
	for i := 0; i+1 < len(span); i += 2 {
		binary.LittleEndian.PutUint16(span[i:], v)
	}
}
