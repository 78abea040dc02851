package color

// Luma returns the BT.601 studio-swing Y' of an sRGB colour.
// Y' = 16 + (65.738*R + 129.057*G + 25.064*B) / 256, in integer form.
func Luma(c ColorU8) uint8 {
	y := (66*int(c.R)+129*int(c.G)+25*int(c.B)+128)>>8 + 16
	return uint8(y)
}

// PackRGB565 packs an sRGB colour into a 5:6:5 sample.
func PackRGB565(c ColorU8) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// UnpackRGB565 expands a 5:6:5 sample to 8 bits per channel.
// Low bits are filled by replicating the high bits so 0x1f maps to 0xff.
func UnpackRGB565(v uint16) ColorU8 {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return ColorU8{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 255,
	}
}
