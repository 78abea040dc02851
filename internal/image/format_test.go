package image

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestLayout_BytesPerPixel(t *testing.T) {
	tests := []struct {
		layout   Layout
		expected int
	}{
		{LayoutI420, 1},
		{LayoutIYUV, 1},
		{LayoutYV12, 1},
		{LayoutRV16, 2},
		{LayoutRV24, 3},
		{LayoutRV32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			if got := tt.layout.BytesPerPixel(); got != tt.expected {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestLayout_Planar(t *testing.T) {
	tests := []struct {
		layout Layout
		planar bool
		planes int
	}{
		{LayoutI420, true, 3},
		{LayoutIYUV, true, 3},
		{LayoutYV12, true, 3},
		{LayoutRV16, false, 1},
		{LayoutRV24, false, 1},
		{LayoutRV32, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			if got := tt.layout.IsPlanar(); got != tt.planar {
				t.Errorf("IsPlanar() = %v, want %v", got, tt.planar)
			}
			if got := tt.layout.Planes(); got != tt.planes {
				t.Errorf("Planes() = %d, want %d", got, tt.planes)
			}
		})
	}
}

func TestLayout_Invalid(t *testing.T) {
	bad := Layout(200)
	if bad.IsValid() {
		t.Error("Layout(200).IsValid() = true, want false")
	}
	if got := bad.String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
	if got := bad.Info(); got != (LayoutInfo{}) {
		t.Errorf("Info() = %+v, want zero value", got)
	}
}

func TestLayout_PlaneSize(t *testing.T) {
	tests := []struct {
		name          string
		layout        Layout
		plane         int
		width, height int
		wantW, wantH  int
	}{
		{"luma", LayoutI420, 0, 720, 576, 720, 576},
		{"chroma even", LayoutI420, 1, 720, 576, 360, 288},
		{"chroma odd", LayoutYV12, 2, 33, 17, 17, 9},
		{"packed", LayoutRV16, 0, 320, 240, 320, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.layout.PlaneSize(tt.plane, tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PlaneSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLayout_RowBytes(t *testing.T) {
	if got := LayoutRV16.RowBytes(0, 100); got != 200 {
		t.Errorf("RV16 RowBytes = %d, want 200", got)
	}
	if got := LayoutI420.RowBytes(1, 100); got != 50 {
		t.Errorf("I420 chroma RowBytes = %d, want 50", got)
	}
}

func TestLayout_TextureFormat(t *testing.T) {
	if got := LayoutI420.Info().TextureFormat; got != gputypes.TextureFormatR8Unorm {
		t.Errorf("I420 TextureFormat = %v, want R8Unorm", got)
	}
	if got := LayoutRV16.Info().TextureFormat; got != gputypes.TextureFormatUndefined {
		t.Errorf("RV16 TextureFormat = %v, want Undefined", got)
	}
}

func TestParseFourCC(t *testing.T) {
	for l := range layoutCount {
		got, ok := ParseFourCC(l.String())
		if !ok || got != l {
			t.Errorf("ParseFourCC(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseFourCC("NV12"); ok {
		t.Error("ParseFourCC(NV12) succeeded, want failure")
	}
}
