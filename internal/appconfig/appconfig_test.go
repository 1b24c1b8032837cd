// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := []byte(`{
		"daemonUrl": "http://192.168.1.20:11434/",
		"modelTool": "/usr/local/bin/ollama",
		"enhancementModel": "mistral:latest",
		"checkTimeout": 3,
		"deleteTimeout": 20,
		"logFile": "logs/forge.log"
	}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("could not write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.URL() != "http://192.168.1.20:11434" {
		t.Fatalf("URL()=%q, trailing slash should be trimmed", cfg.URL())
	}
	if cfg.Tool() != "/usr/local/bin/ollama" {
		t.Fatalf("Tool()=%q", cfg.Tool())
	}
	if cfg.Enhancement() != "mistral:latest" {
		t.Fatalf("Enhancement()=%q", cfg.Enhancement())
	}
	if cfg.CheckTimeout() != 3*time.Second {
		t.Fatalf("CheckTimeout()=%v", cfg.CheckTimeout())
	}
	if cfg.DeleteTimeout() != 20*time.Second {
		t.Fatalf("DeleteTimeout()=%v", cfg.DeleteTimeout())
	}
	if cfg.LogFilePath() != "logs/forge.log" {
		t.Fatalf("LogFilePath()=%q", cfg.LogFilePath())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("ConfigPath=%q want %q", cfg.ConfigPath, path)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	if cfg.URL() != DefaultDaemonURL {
		t.Fatalf("URL()=%q want %q", cfg.URL(), DefaultDaemonURL)
	}
	if cfg.Tool() != DefaultModelTool {
		t.Fatalf("Tool()=%q want %q", cfg.Tool(), DefaultModelTool)
	}
	if cfg.Enhancement() != DefaultEnhancementModel {
		t.Fatalf("Enhancement()=%q", cfg.Enhancement())
	}
	if cfg.Vision() != DefaultVisionModel {
		t.Fatalf("Vision()=%q", cfg.Vision())
	}
	if cfg.CheckTimeout() != 2*time.Second {
		t.Fatalf("CheckTimeout()=%v", cfg.CheckTimeout())
	}
	if cfg.UnloadTimeout() != 5*time.Second {
		t.Fatalf("UnloadTimeout()=%v", cfg.UnloadTimeout())
	}
	if cfg.DeleteTimeout() != 10*time.Second {
		t.Fatalf("DeleteTimeout()=%v", cfg.DeleteTimeout())
	}
	if cfg.LogFilePath() != "promptforge.log" {
		t.Fatalf("LogFilePath()=%q", cfg.LogFilePath())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
