package subpic

import (
	"image/color"

	"github.com/gogpu/subpic/internal/blit"
	intColor "github.com/gogpu/subpic/internal/color"
)

// Alpha levels of a ColorTable entry.
const (
	// AlphaTransparent runs leave the frame untouched.
	AlphaTransparent = blit.Transparent

	// AlphaOpaque runs overwrite the frame.
	AlphaOpaque = blit.Opaque
)

// ColorTable maps the four colour indices of a bitmap to destination
// samples. It comes from stream metadata, not from the run-length data,
// and is supplied with every render call.
//
// Any Alpha value other than AlphaTransparent and AlphaOpaque declares a
// partially transparent colour. Partial colours are currently drawn as
// opaque; there is no blending.
type ColorTable = blit.Table

// DefaultColorTable returns the table used when a render call passes nil:
// index 0 transparent, 1 to 3 opaque grey levels.
func DefaultColorTable() *ColorTable {
	return &ColorTable{
		Luma:   [4]uint8{0xaa, 0x44, 0xff, 0x88},
		RGB565: [4]uint16{0xaaaa, 0x4444, 0xffff, 0x8888},
		Alpha:  [4]uint8{AlphaTransparent, AlphaOpaque, AlphaOpaque, AlphaOpaque},
	}
}

// ColorTableFromColors derives a table from four colours. Luma samples use
// BT.601 weights, packed samples are RGB 5:6:5, and the alpha of each
// colour becomes its Alpha entry.
func ColorTableFromColors(colors [4]color.Color) *ColorTable {
	var t ColorTable
	for i, c := range colors {
		if c == nil {
			continue
		}
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		u := intColor.ColorU8{R: n.R, G: n.G, B: n.B, A: n.A}
		t.Luma[i] = intColor.Luma(u)
		t.RGB565[i] = intColor.PackRGB565(u)
		t.Alpha[i] = n.A
	}
	return &t
}
