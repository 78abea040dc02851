package blit

import "github.com/gogpu/subpic/rle"

// Planar draws a bitmap 1:1 into a one-byte-per-sample plane.
//
// dst is the plane memory, stride its pitch and width/height its size in
// samples. The bitmap lands at r.X, r.Y.
func Planar(dst []byte, stride, width, height int, r Rect, src []byte, t *Table) Stats {
	var st Stats
	rd := rle.NewReader(src)

	for row := range r.Height {
		dy := r.Y + row
		visible := dy >= 0 && dy < height
		line := 0
		if visible {
			line = dy * stride
		}

		for x := 0; x < r.Width; {
			u, ok := rd.Next()
			if !ok {
				st.Short = true
				return st
			}
			st.Units++

			n := min(u.Len(), r.Width-x)
			c := u.Color()
			if visible && n > 0 && t.draws(c) {
				x0, x1 := clip(r.X+x, r.X+x+n, width)
				if x0 < x1 {
					fill8(dst[line+x0:line+x1], t.Luma[c])
				}
			}
			x += n
		}
		st.Rows++
	}
	return st
}

func fill8(span []byte, v uint8) {
	for i := range span {
		span[i] = v
	}
}
