// Package color converts overlay palette colours into destination samples.
package color

// ColorU8 represents a colour with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}
