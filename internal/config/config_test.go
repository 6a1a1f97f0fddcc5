package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.StorePath != filepath.Join(dir, "profile.yaml") {
		t.Fatalf("unexpected store path %s", cfg.StorePath)
	}
	if cfg.LogPath != filepath.Join(dir, "profile-editor.log") {
		t.Fatalf("unexpected log path %s", cfg.LogPath)
	}
	if cfg.LoadLatency != 0 || cfg.FailEvery != 0 {
		t.Fatalf("defaults should leave latency and injection off: %+v", cfg)
	}
}

func TestNewConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "store_path: data/me.yaml\nload_latency: 250ms\nsave_latency: 1s\nfail_every: 3\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.StorePath != filepath.Join(dir, "data", "me.yaml") {
		t.Fatalf("relative store path must resolve under project dir, got %s", cfg.StorePath)
	}
	if cfg.LoadLatency != 250*time.Millisecond || cfg.SaveLatency != time.Second {
		t.Fatalf("latencies not parsed: %+v", cfg)
	}
	if cfg.FailEvery != 3 {
		t.Fatalf("fail_every not parsed: %d", cfg.FailEvery)
	}
}

func TestNewConfigRejectsNegativeValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("fail_every: -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := NewConfig(dir); err == nil {
		t.Fatalf("negative fail_every must be rejected")
	}
}
