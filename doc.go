// Package subpic manages timed overlay bitmaps (subtitles, on-screen
// elements) and composites them onto video frames.
//
// # Overview
//
// An overlay lives in a slot of a fixed-size [Pool]. Producers (typically
// decoder goroutines) reserve a slot, fill its payload and placement, and
// publish it. Once per output frame the rendering goroutine asks the pool
// which overlays are visible at the frame's presentation timestamp and
// hands that chain to [RenderAll], which decodes each run-length bitmap
// into the frame.
//
//	pool := subpic.NewPool(subpic.WithOutputSize(720, 576))
//
//	// Producer side.
//	o, err := pool.Reserve(subpic.KindTimedBitmap, len(stream))
//	if err != nil {
//	    return err
//	}
//	copy(o.Payload(), stream)
//	o.X, o.Y, o.Width, o.Height = 10, 500, 600, 40
//	o.Start, o.Stop = pts, pts+2*time.Second
//	_ = pool.Publish(o)
//
//	// Rendering side, once per frame.
//	chain := pool.Select(framePTS)
//	_ = subpic.RenderAll(chain, frame, nil)
//
// # Slot lifecycle
//
// Free → Reserved → Ready → Destroyed → Reserved (reused). Reserved →
// Destroyed aborts an overlay before it was ever shown. Destroyed slots keep
// their buffer so a later request of the same kind and no larger size costs
// no allocation.
//
// # Concurrency
//
// Only [Pool.Reserve] takes a lock. [Pool.Publish] and [Pool.Retire] are
// single atomic status stores and may race with the rendering goroutine,
// which only ever looks at Ready slots. All fields of an overlay must be
// written before Publish. [Pool.Select] and [RenderAll] must be called from
// a single goroutine.
//
// # Run-length payloads
//
// Bitmap payloads are streams of 16-bit little-endian units, see package
// [github.com/gogpu/subpic/rle].
//
// # Destinations
//
// Planar I420, IYUV and YV12 frames are drawn 1:1 into the luma plane.
// Packed RV16 frames are drawn with nearest-neighbour scaling from the
// render size to the frame size. Other layouts are reported and left
// untouched.
package subpic
