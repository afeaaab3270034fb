package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Threshold != 0.80 {
		t.Errorf("threshold: got %v, want 0.80", cfg.Threshold)
	}
	if cfg.MaxCount != 10 {
		t.Errorf("max count: got %d, want 10", cfg.MaxCount)
	}
	if cfg.Threads != 0 {
		t.Errorf("threads: got %d, want 0 (auto)", cfg.Threads)
	}
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := &Config{Threshold: 1.8, MaxCount: -3, Threads: -1, TemplateCacheSize: 0, SelectionW: -5}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 0.80 || cfg.MaxCount != 10 || cfg.Threads != 0 {
		t.Fatalf("clamping failed: %+v", cfg)
	}
	if cfg.TemplateCacheSize != 16 || cfg.SelectionW != 0 {
		t.Fatalf("clamping failed: %+v", cfg)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 0.80 || cfg.MaxCount != 10 {
		t.Fatalf("missing file must produce defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Threshold = 0.92
	cfg.MaxCount = 3
	cfg.Debug = true
	cfg.SelectionX, cfg.SelectionY, cfg.SelectionW, cfg.SelectionH = 10, 20, 300, 200
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Fatalf("round trip: got %+v, want %+v", loaded, cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}
