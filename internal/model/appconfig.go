package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Layout defaults applied to requests that leave them unset
	DefaultSpacing    float64   `json:"default_spacing"`
	DefaultMargin     float64   `json:"default_margin"`
	DefaultAlgorithm  Algorithm `json:"default_algorithm"`
	DefaultShelfCount int       `json:"default_shelf_count"`

	// Search budget
	TimeBudgetSeconds float64 `json:"time_budget_seconds"`
	MaxAttempts       int     `json:"max_attempts"`
	TargetSolutions   int     `json:"target_solutions"`
	MaxEmitted        int     `json:"max_emitted"` // Solutions forwarded per request

	// Application preferences
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
	ListenAddr     string   `json:"listen_addr"`
	RecentRequests []string `json:"recent_requests"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultLayoutConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultLayoutConfig()
	return AppConfig{
		DefaultSpacing:    defaults.Spacing,
		DefaultMargin:     defaults.Margin,
		DefaultAlgorithm:  defaults.Algorithm,
		DefaultShelfCount: defaults.ShelfCount,
		TimeBudgetSeconds: 5,
		MaxAttempts:       100000,
		TargetSolutions:   10,
		MaxEmitted:        10,
		LogLevel:          "info",
		ListenAddr:        ":8080",
		RecentRequests:    []string{},
	}
}

// ApplyToConfig fills the unset fields of a LayoutConfig from the saved defaults.
// Zero spacing and margin are legitimate requests, so only the algorithm and
// shelf count are treated as unset when zero.
func (c AppConfig) ApplyToConfig(lc *LayoutConfig) {
	if lc.Algorithm == "" {
		lc.Algorithm = c.DefaultAlgorithm
	}
	if lc.ShelfCount <= 0 {
		lc.ShelfCount = c.DefaultShelfCount
	}
}

// AddRecentRequest records path at the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentRequest(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentRequests {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentRequests = recent
}
