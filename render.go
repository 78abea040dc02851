package subpic

import (
	"fmt"

	"github.com/gogpu/subpic/internal/blit"
)

// RenderAll draws every overlay of chain into frame using table, or
// DefaultColorTable when table is nil.
//
// If the frame layout has no overlay kernel the frame is left untouched
// and ErrUnknownLayout is returned. Overlays the compositor cannot draw
// are reported and skipped; they never stop the rest of the chain.
func RenderAll(chain []*Overlay, frame *Frame, table *ColorTable) error {
	if err := checkLayout(frame); err != nil {
		return err
	}
	if table == nil {
		table = DefaultColorTable()
	}

	for _, o := range chain {
		if o == nil {
			continue
		}
		if err := renderOverlay(o, frame, table); err != nil {
			Logger().Warn("subpic: overlay not rendered", "slot", o.index, "kind", o.kind, "err", err)
		}
	}
	return nil
}

// RenderBitmap draws a single timed bitmap into frame.
func RenderBitmap(o *Overlay, frame *Frame, table *ColorTable) error {
	if err := checkLayout(frame); err != nil {
		return err
	}
	if table == nil {
		table = DefaultColorTable()
	}
	if o == nil {
		return fmt.Errorf("%w: nil overlay", ErrUnknownKind)
	}
	return renderOverlay(o, frame, table)
}

func checkLayout(frame *Frame) error {
	if frame == nil {
		return fmt.Errorf("%w: nil frame", ErrUnknownLayout)
	}
	switch frame.Layout() {
	case LayoutI420, LayoutIYUV, LayoutYV12, LayoutRV16:
		return nil
	}
	Logger().Warn("subpic: cannot render overlays", "layout", frame.Layout())
	return fmt.Errorf("%w: %v", ErrUnknownLayout, frame.Layout())
}

func renderOverlay(o *Overlay, frame *Frame, table *ColorTable) error {
	if !o.kind.Renderable() {
		return fmt.Errorf("%w: %v", ErrUnknownKind, o.kind)
	}

	r := blit.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
	p := frame.Plane(0)

	var st blit.Stats
	switch frame.Layout() {
	case LayoutI420, LayoutIYUV, LayoutYV12:
		st = blit.Planar(p.Pix, p.Stride, p.Width, p.Height, r, o.Payload(), table)
	case LayoutRV16:
		rw, rh := frame.RenderSize()
		sx := blit.Scale(frame.Width(), rw)
		sy := blit.Scale(frame.Height(), rh)
		st = blit.Packed(p.Pix, p.Stride, p.Width, p.Height, r, sx, sy, o.Payload(), table)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownLayout, frame.Layout())
	}

	if st.Short {
		Logger().Debug("subpic: run-length stream ended early",
			"slot", o.index, "rows", st.Rows, "height", o.Height, "units", st.Units)
	}
	return nil
}
