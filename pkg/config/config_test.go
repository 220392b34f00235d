package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TS.PID != 0x101 {
		t.Errorf("TS.PID = 0x%x, want 0x101", cfg.TS.PID)
	}
	if cfg.KLV.RequireChecksum {
		t.Error("KLV.RequireChecksum should default to false")
	}
	if cfg.Dispatch.ListenAddress == "" {
		t.Error("Dispatch.ListenAddress should have a default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("ts:\n  pid: 257\nklv:\n  require_checksum: true\ningest:\n  s3:\n    bucket: goodwin\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TS.PID != 257 {
		t.Errorf("TS.PID = %d, want 257", cfg.TS.PID)
	}
	if !cfg.KLV.RequireChecksum {
		t.Error("KLV.RequireChecksum should be overridden to true")
	}
	if cfg.Ingest.S3.Bucket != "goodwin" {
		t.Errorf("Ingest.S3.Bucket = %q, want goodwin", cfg.Ingest.S3.Bucket)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
