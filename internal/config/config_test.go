package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultParses(t *testing.T) {
	cfg, err := parse(defaultTileChainYAML)
	if err != nil {
		t.Fatalf("embedded default: %v", err)
	}
	if cfg.Pace != PaceNormal || cfg.Pacing != PacingFor(PaceNormal) {
		t.Errorf("pace %q pacing %+v", cfg.Pace, cfg.Pacing)
	}
	if cfg.Theme.Glyphs != GlyphsBlocks {
		t.Errorf("glyphs %q", cfg.Theme.Glyphs)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "pacing:\n  clear_ticks: 9\n  fall_ticks: 1\n  popup_ticks: 10\n  flash_ticks: 20\ntheme:\n  glyphs: letters\nlevels_dir: /tmp/levels\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTileChain(path)
	if err != nil {
		t.Fatalf("LoadTileChain: %v", err)
	}
	want := PacingConfig{ClearTicks: 9, FallTicks: 1, PopupTicks: 10, FlashTicks: 20}
	if cfg.Pacing != want {
		t.Errorf("pacing %+v, want %+v", cfg.Pacing, want)
	}
	if cfg.Theme.Glyphs != GlyphsLetters || cfg.Theme.Name != "classic" {
		t.Errorf("theme %+v", cfg.Theme)
	}
	if cfg.LevelsDir != "/tmp/levels" {
		t.Errorf("levels dir %q", cfg.LevelsDir)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad yaml":       "pacing: [",
		"unknown pace":   "pace: glacial\n",
		"negative ticks": "pacing:\n  clear_ticks: -1\n",
		"unknown glyphs": "theme:\n  glyphs: emoji\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTileChain(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := LoadTileChain(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file accepted")
	}
}

func TestPaceOverridesPacingBlock(t *testing.T) {
	cfg, err := parse([]byte("pace: brisk\npacing:\n  clear_ticks: 40\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pacing != PacingFor(PaceBrisk) {
		t.Errorf("pacing %+v, want brisk", cfg.Pacing)
	}
}

func TestParsePace(t *testing.T) {
	tests := []struct {
		in      string
		want    PacePreset
		wantErr bool
	}{
		{"", "", false},
		{"Relaxed", PaceRelaxed, false},
		{" instant ", PaceInstant, false},
		{"warp", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePace(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePace(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(PacingConfig{ClearTicks: 3, FallTicks: 1})
	if !p.Tick() {
		t.Fatal("new pacer should be ready")
	}

	p.AfterClear()
	ready := 0
	for range 3 {
		if p.Tick() {
			ready++
		}
	}
	if ready != 1 {
		t.Errorf("ready %d times in 3 ticks after a clear, want 1", ready)
	}

	p.AfterFall()
	if !p.Tick() {
		t.Error("fall delay of 1 should be over after one tick")
	}

	p.AfterClear()
	p.Reset()
	if !p.Tick() {
		t.Error("Reset should drop the delay")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/levels"); got != filepath.Join(home, "levels") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed to %q", got)
	}
}
