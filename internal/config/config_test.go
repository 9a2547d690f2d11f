package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray config file is picked up.
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "xlsx" {
		t.Fatalf("format = %q, want xlsx", cfg.Format)
	}
	if cfg.Probe != "auto" {
		t.Fatalf("probe = %q, want auto", cfg.Probe)
	}
	if cfg.ProgressInterval != 30*time.Second {
		t.Fatalf("progress interval = %v", cfg.ProgressInterval)
	}
	if len(cfg.Exclude) == 0 {
		t.Fatalf("expected default exclude patterns")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DIRSCOPE_FORMAT", "csv")
	t.Setenv("DIRSCOPE_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "csv" {
		t.Fatalf("format = %q, want csv", cfg.Format)
	}
	if !cfg.Verbose {
		t.Fatalf("verbose = false, want true")
	}
}
