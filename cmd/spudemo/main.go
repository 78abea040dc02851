// Command spudemo runs the overlay pipeline end to end: producers publish
// run-length captions into a pool, and a render loop selects and composites
// them into video frames. The last frame is saved as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/subpic"
	"github.com/gogpu/subpic/rle"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		width        = flag.Int("width", 720, "frame width")
		height       = flag.Int("height", 576, "frame height")
		layoutName   = flag.String("layout", "I420", "frame layout FourCC (I420, IYUV, YV12, RV16)")
		renderWidth  = flag.Int("render-width", 0, "overlay coordinate width, 0 for frame width")
		renderHeight = flag.Int("render-height", 0, "overlay coordinate height, 0 for frame height")
		captions     = flag.Int("captions", 4, "number of caption producers")
		frames       = flag.Int("frames", 12, "number of frames to render")
		step         = flag.Duration("step", 250*time.Millisecond, "presentation time between frames")
		zoom         = flag.Int("zoom", 1, "integer upscale of the saved preview")
		configPath   = flag.String("config", "", "YAML pool config")
		output       = flag.String("output", "spudemo.png", "output file")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	subpic.SetLogger(logger)

	layout, ok := subpic.ParseLayout(*layoutName)
	if !ok {
		log.Fatalf("Unknown layout %q", *layoutName)
	}

	cfg, err := loadConfig(*configPath, *width, *height)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	table, err := cfg.ColorTable()
	if err != nil {
		log.Fatalf("Failed to build palette: %v", err)
	}

	pool := subpic.NewPool(cfg.Options()...)
	rw, rh := *renderWidth, *renderHeight
	if rw <= 0 || rh <= 0 {
		rw, rh = *width, *height
	}

	if err := produce(pool, *captions, rw, rh, *step); err != nil {
		log.Fatalf("Producer failed: %v", err)
	}

	last, err := renderFrames(pool, table, layout, *width, *height, rw, rh, *frames, *step, logger)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	if err := savePNG(*output, last.ToImage(), *zoom); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := pool.Stats()
	logger.Info("pool stats",
		"capacity", st.Capacity, "ready", st.Ready, "destroyed", st.Destroyed,
		"allocs", st.Allocs, "reuses", st.Reuses, "exhausted", st.Exhausted)
	log.Printf("Demo saved to %s (%dx%d %v)\n", *output, *width, *height, layout)
}

func loadConfig(path string, width, height int) (*subpic.Config, error) {
	if path != "" {
		return subpic.LoadConfig(path)
	}
	cfg := subpic.DefaultConfig()
	cfg.Output.Width = width
	cfg.Output.Height = height
	return cfg, nil
}

// produce publishes one caption per producer goroutine. Caption i is shown
// from i*4*step for six steps; odd captions are ephemeral and replace
// whatever ephemeral caption came before them.
func produce(pool *subpic.Pool, n, rw, rh int, step time.Duration) error {
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			w, h := rw/2, max(rh/12, 4)
			stream, err := rle.Encode(captionBitmap(w, h, i), w)
			if err != nil {
				return fmt.Errorf("caption %d: %w", i, err)
			}

			o, err := pool.Reserve(subpic.KindTimedBitmap, len(stream))
			if errors.Is(err, subpic.ErrPoolExhausted) {
				subpic.Logger().Warn("caption dropped", "caption", i)
				return nil
			}
			if err != nil {
				return fmt.Errorf("caption %d: %w", i, err)
			}

			copy(o.Payload(), stream)
			o.X = rw / 4
			o.Y = rh - (i%3+1)*(h+h/2)
			o.Width, o.Height = w, h
			o.Start = time.Duration(i*4) * step
			o.Stop = o.Start + 6*step
			o.Ephemeral = i%2 == 1
			return pool.Publish(o)
		})
	}
	return g.Wait()
}

// captionBitmap draws a box with a border in colour 2, a fill in colour 1
// and a diagonal pattern in colour 3 whose phase depends on seed.
func captionBitmap(w, h, seed int) []uint8 {
	pix := make([]uint8, w*h)
	for y := range h {
		for x := range w {
			var c uint8 = 1
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				c = 2
			case (x+y+seed*3)%16 < 3:
				c = 3
			case x < 2 || x >= w-2:
				c = 0
			}
			pix[y*w+x] = c
		}
	}
	return pix
}

func renderFrames(pool *subpic.Pool, table *subpic.ColorTable, layout subpic.Layout,
	width, height, rw, rh, frames int, step time.Duration, logger *slog.Logger,
) (*subpic.Frame, error) {
	frameCache := subpic.NewFramePool(2)
	var last *subpic.Frame

	for i := range frames {
		frame, err := frameCache.Get(width, height, layout)
		if err != nil {
			return nil, err
		}
		frame.SetRenderSize(rw, rh)
		paintBackground(frame)

		now := time.Duration(i) * step
		chain := pool.Select(now)
		if err := subpic.RenderAll(chain, frame, table); err != nil {
			return nil, err
		}
		logger.Info("frame", "index", i, "pts", now, "overlays", len(chain),
			"layout", frame.Layout(), "upload", frame.TextureFormat())

		frameCache.Put(last)
		last = frame
	}
	if last == nil {
		return nil, errors.New("no frames rendered")
	}
	return last, nil
}

// paintBackground fills planar frames with mid grey so chroma stays neutral.
func paintBackground(f *subpic.Frame) {
	if !f.Layout().IsPlanar() {
		return
	}
	for i := range f.Layout().Planes() {
		v := byte(0x80)
		if i == 0 {
			v = 0x30
		}
		pix := f.Plane(i).Pix
		for j := range pix {
			pix[j] = v
		}
	}
}

func savePNG(path string, img image.Image, zoom int) error {
	if zoom > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
