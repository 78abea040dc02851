package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/subpic"
)

func TestPipeline(t *testing.T) {
	const width, height = 64, 48
	step := 250 * time.Millisecond

	pool := subpic.NewPool(subpic.WithCapacity(4), subpic.WithOutputSize(width, height))
	if err := produce(pool, 2, width, height, step); err != nil {
		t.Fatalf("produce() error = %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	table := subpic.DefaultColorTable()

	frame, err := renderFrames(pool, table, subpic.LayoutI420, width, height, width, height, 1, step, logger)
	if err != nil {
		t.Fatalf("renderFrames() error = %v", err)
	}

	if !bytes.Contains(frame.Plane(0).Pix, []byte{table.Luma[2]}) {
		t.Error("caption border not drawn")
	}
	for _, want := range []string{"layout=I420", "upload=R8Unorm", "overlays=1"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("frame log %q missing %q", logs.String(), want)
		}
	}
}

func TestCaptionBitmap(t *testing.T) {
	const w, h = 10, 4
	pix := captionBitmap(w, h, 0)
	if len(pix) != w*h {
		t.Fatalf("len = %d, want %d", len(pix), w*h)
	}
	for x := range w {
		if pix[x] != 2 || pix[(h-1)*w+x] != 2 {
			t.Errorf("border missing at x=%d", x)
		}
	}
	for _, c := range pix {
		if c > 3 {
			t.Fatalf("colour index %d out of range", c)
		}
	}
}
