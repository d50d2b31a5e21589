package model

import "testing"

func TestDefaultLibraryHasPresets(t *testing.T) {
	lib := DefaultLibrary()
	if len(lib.Frames) == 0 {
		t.Fatal("expected default frame presets")
	}
	if len(lib.Walls) == 0 {
		t.Fatal("expected default wall presets")
	}
	seen := make(map[string]bool)
	for _, f := range lib.Frames {
		if f.ID == "" {
			t.Errorf("frame preset %q has empty ID", f.Name)
		}
		if seen[f.ID] {
			t.Errorf("duplicate preset ID %s", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestFramePresetToFrameKeepsID(t *testing.T) {
	fp := NewFramePreset("8x10 Classic", 8, 10)
	f := fp.ToFrame(3)
	if f.ID != fp.ID {
		t.Errorf("expected frame ID %s, got %s", fp.ID, f.ID)
	}
	if f.Count != 3 {
		t.Errorf("expected count 3, got %d", f.Count)
	}
	if f.Width != 8 || f.Height != 10 {
		t.Errorf("expected 8x10, got %.0fx%.0f", f.Width, f.Height)
	}
}

func TestLibraryLookups(t *testing.T) {
	lib := DefaultLibrary()
	fp := lib.FindFrameByName("16x20 Large")
	if fp == nil {
		t.Fatal("expected to find 16x20 Large")
	}
	if lib.FindFrameByID(fp.ID) != fp {
		t.Error("FindFrameByID should return the same entry")
	}
	if lib.FindFrameByName("nope") != nil {
		t.Error("expected nil for unknown frame name")
	}
	wp := lib.FindWallByName("Hallway 8'x4'")
	if wp == nil {
		t.Fatal("expected to find hallway wall")
	}
	w := wp.ToWall()
	if w.Width != 96 || w.Height != 48 {
		t.Errorf("expected 96x48 wall, got %.0fx%.0f", w.Width, w.Height)
	}
	if len(lib.FrameNames()) != len(lib.Frames) {
		t.Error("FrameNames length mismatch")
	}
	if len(lib.WallNames()) != len(lib.Walls) {
		t.Error("WallNames length mismatch")
	}
}
