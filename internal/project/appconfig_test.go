package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/gallerywall/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSpacing = 3.5
	cfg.DefaultAlgorithm = model.AlgorithmSpiral
	cfg.LogLevel = "debug"
	cfg.RecentRequests = []string{"/tmp/hall.json", "/tmp/stairs.toml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultSpacing != 3.5 {
		t.Errorf("expected DefaultSpacing=3.5, got %f", loaded.DefaultSpacing)
	}
	if loaded.DefaultAlgorithm != model.AlgorithmSpiral {
		t.Errorf("expected DefaultAlgorithm=spiral, got %s", loaded.DefaultAlgorithm)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", loaded.LogLevel)
	}
	if len(loaded.RecentRequests) != 2 {
		t.Errorf("expected 2 recent requests, got %d", len(loaded.RecentRequests))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.MaxAttempts != defaults.MaxAttempts {
		t.Errorf("expected default max attempts %d, got %d", defaults.MaxAttempts, cfg.MaxAttempts)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected listen_addr=:8080, got %s", cfg.ListenAddr)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_margin":12}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultMargin != 12 {
		t.Errorf("expected DefaultMargin=12, got %f", cfg.DefaultMargin)
	}
	if cfg.TargetSolutions != model.DefaultAppConfig().TargetSolutions {
		t.Errorf("expected default target solutions, got %d", cfg.TargetSolutions)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentRequests(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"default_spacing":1,"recent_requests":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentRequests == nil {
		t.Error("RecentRequests should not be nil after loading")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".gallerywall" {
		t.Errorf("expected parent dir .gallerywall, got %s", filepath.Dir(path))
	}
}
