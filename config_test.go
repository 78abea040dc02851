package subpic

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
capacity: 4
margin: 20
max_payload: 64
output:
  width: 720
  height: 576
palette:
  - {color: "#000000", alpha: 0}
  - {color: "#ffffff", alpha: 255}
  - {color: "#ff0000", alpha: 255}
  - {color: "#0000ff", alpha: 128}
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Capacity != 4 || cfg.Margin != 20 || cfg.MaxPayload != 64 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Output.Width != 720 || cfg.Output.Height != 576 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if len(cfg.Palette) != 4 || cfg.Palette[3].Alpha != 128 {
		t.Errorf("Palette = %+v", cfg.Palette)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("output: {width: 320, height: 240}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Capacity != DefaultCapacity || cfg.Margin != MarginDisabled {
		t.Errorf("missing keys did not keep defaults: %+v", cfg)
	}

	table, err := cfg.ColorTable()
	if err != nil {
		t.Fatal(err)
	}
	if *table != *DefaultColorTable() {
		t.Error("empty palette should give the default table")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "capacity: [", "parse"},
		{"capacity", "capacity: 0", "capacity must be positive"},
		{"output", "output: {width: -1, height: 10}", "invalid output size"},
		{"max payload", "max_payload: -5", "max_payload"},
		{"palette length", "palette: [{color: \"#000000\", alpha: 0}]", "4 entries"},
		{"palette color", "palette: [{color: red}, {color: \"#000000\"}, {color: \"#000000\"}, {color: \"#000000\"}]", "palette[0]"},
		{"palette hex", "palette: [{color: \"#00000g\"}, {color: \"#000000\"}, {color: \"#000000\"}, {color: \"#000000\"}]", "palette[0]"},
		{"palette alpha", "palette: [{color: \"#000000\"}, {color: \"#000000\", alpha: 256}, {color: \"#000000\"}, {color: \"#000000\"}]", "palette[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPool(cfg.Options()...)

	if p.Capacity() != 4 || p.Margin() != 20 {
		t.Errorf("pool capacity=%d margin=%d", p.Capacity(), p.Margin())
	}
	if w, h := p.OutputSize(); w != 720 || h != 576 {
		t.Errorf("OutputSize() = %dx%d", w, h)
	}

	if _, err := p.Reserve(KindTimedBitmap, 64); err != nil {
		t.Errorf("Reserve at the limit: %v", err)
	}
	if _, err := p.Reserve(KindTimedBitmap, 65); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("Reserve above max_payload error = %v, want ErrOutOfMemory", err)
	}
}

func TestConfig_ColorTable(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	table, err := cfg.ColorTable()
	if err != nil {
		t.Fatal(err)
	}
	if table.Luma != [4]uint8{16, 235, 82, 41} {
		t.Errorf("Luma = %v", table.Luma)
	}
	if table.Alpha != [4]uint8{0, 255, 255, 128} {
		t.Errorf("Alpha = %v", table.Alpha)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subpic.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Capacity != 4 {
		t.Errorf("Capacity = %d, want 4", cfg.Capacity)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}
