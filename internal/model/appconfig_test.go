package model

import "testing"

func TestDefaultAppConfigMatchesDefaultLayoutConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultLayoutConfig()

	if cfg.DefaultSpacing != defaults.Spacing {
		t.Errorf("Spacing mismatch: config=%f layout=%f", cfg.DefaultSpacing, defaults.Spacing)
	}
	if cfg.DefaultMargin != defaults.Margin {
		t.Errorf("Margin mismatch: config=%f layout=%f", cfg.DefaultMargin, defaults.Margin)
	}
	if cfg.DefaultAlgorithm != defaults.Algorithm {
		t.Errorf("Algorithm mismatch: config=%s layout=%s", cfg.DefaultAlgorithm, defaults.Algorithm)
	}
	if cfg.TimeBudgetSeconds != 5 {
		t.Errorf("expected 5s time budget, got %f", cfg.TimeBudgetSeconds)
	}
	if cfg.MaxAttempts != 100000 {
		t.Errorf("expected 100000 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.RecentRequests == nil {
		t.Error("RecentRequests should not be nil")
	}
}

func TestApplyToConfig_FillsUnsetFields(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultAlgorithm = AlgorithmSkyline
	cfg.DefaultShelfCount = 4

	lc := LayoutConfig{Spacing: 1}
	cfg.ApplyToConfig(&lc)

	if lc.Algorithm != AlgorithmSkyline {
		t.Errorf("expected Algorithm=skyline, got %s", lc.Algorithm)
	}
	if lc.ShelfCount != 4 {
		t.Errorf("expected ShelfCount=4, got %d", lc.ShelfCount)
	}
	if lc.Spacing != 1 {
		t.Errorf("explicit spacing must survive, got %f", lc.Spacing)
	}
}

func TestApplyToConfig_KeepsExplicitAlgorithm(t *testing.T) {
	cfg := DefaultAppConfig()
	lc := LayoutConfig{Algorithm: AlgorithmGrid, ShelfCount: 2}
	cfg.ApplyToConfig(&lc)

	if lc.Algorithm != AlgorithmGrid {
		t.Errorf("expected Algorithm=grid, got %s", lc.Algorithm)
	}
	if lc.ShelfCount != 2 {
		t.Errorf("expected ShelfCount=2, got %d", lc.ShelfCount)
	}
}

func TestAddRecentRequest(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentRequest("a.json", 2)
	cfg.AddRecentRequest("b.json", 2)
	cfg.AddRecentRequest("a.json", 2)
	cfg.AddRecentRequest("c.json", 2)

	if len(cfg.RecentRequests) != 2 {
		t.Fatalf("expected 2 recent requests, got %d", len(cfg.RecentRequests))
	}
	if cfg.RecentRequests[0] != "c.json" || cfg.RecentRequests[1] != "a.json" {
		t.Errorf("unexpected recent order: %v", cfg.RecentRequests)
	}
}
