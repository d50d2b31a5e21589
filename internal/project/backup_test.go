package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/gallerywall/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMargin = 8
	cfg.LogLevel = "warn"
	lib := model.DefaultLibrary()
	lib.Frames = append(lib.Frames, model.NewFramePreset("Custom 9x9", 9, 9))

	if err := ExportAllData(path, cfg, lib); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultMargin != 8 {
		t.Errorf("expected DefaultMargin=8, got %f", backup.Config.DefaultMargin)
	}
	if backup.Config.LogLevel != "warn" {
		t.Errorf("expected LogLevel=warn, got %s", backup.Config.LogLevel)
	}
	if len(backup.Library.Frames) != len(lib.Frames) {
		t.Errorf("expected %d frame presets, got %d", len(lib.Frames), len(backup.Library.Frames))
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}
