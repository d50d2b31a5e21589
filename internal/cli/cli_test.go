package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/project"
	"github.com/piwi3910/gallerywall/internal/worker"
)

// testEnv points the CLI at a temporary config and library with a short
// search budget.
type testEnv struct {
	dir     string
	config  string
	library string
	logs    bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		config:  filepath.Join(dir, "config.json"),
		library: filepath.Join(dir, "library.json"),
	}

	cfg := model.DefaultAppConfig()
	cfg.TimeBudgetSeconds = 0.2
	cfg.MaxAttempts = 20
	cfg.TargetSolutions = 2
	if err := project.SaveAppConfig(env.config, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(&e.logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(append(args, "--config", e.config, "--library", e.library))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

func TestRequestNewThenGenerate(t *testing.T) {
	env := newTestEnv(t)
	req := env.path("hallway.toml")

	if err := env.run(t, "request", "new", req, "--width", "120", "--height", "60", "--frame", "8x10 Classic:4"); err != nil {
		t.Fatalf("request new: %v", err)
	}
	in, err := project.LoadRequest(req)
	if err != nil {
		t.Fatalf("load written request: %v", err)
	}
	if in.TotalRequested() != 4 {
		t.Fatalf("expected 4 frames requested, got %d", in.TotalRequested())
	}

	pdfPath := env.path("layouts.pdf")
	labelsPath := env.path("labels.pdf")
	if err := env.run(t, "generate", req, "--algorithm", "grid", "--seed", "3", "--pdf", pdfPath, "--labels", labelsPath); err != nil {
		t.Fatalf("generate: %v", err)
	}

	res, err := project.LoadResults(env.path("hallway.results.json"))
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if res.Input.Config.Algorithm != model.AlgorithmGrid {
		t.Errorf("expected algorithm override to grid, got %q", res.Input.Config.Algorithm)
	}
	if res.Solutions[0].Score != 4 {
		t.Errorf("expected all 4 frames placed, got %d", res.Solutions[0].Score)
	}
	for _, p := range []string{pdfPath, labelsPath} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s, err=%v", p, err)
		}
	}

	cfg, err := project.LoadAppConfig(env.config)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.RecentRequests) != 1 || !strings.HasSuffix(cfg.RecentRequests[0], "hallway.toml") {
		t.Errorf("expected the request in recent requests, got %v", cfg.RecentRequests)
	}
}

func TestRequestNewUnknownPreset(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(t, "request", "new", env.path("r.toml"), "--wall", "Nowhere")
	if err == nil || !strings.Contains(err.Error(), "no wall preset") {
		t.Errorf("expected missing wall preset error, got %v", err)
	}

	err = env.run(t, "request", "new", env.path("r.toml"), "--width", "50", "--height", "50", "--frame", "Nope:2")
	if err == nil || !strings.Contains(err.Error(), "no frame preset") {
		t.Errorf("expected missing frame preset error, got %v", err)
	}
}

func TestGenerate_UnknownAlgorithm(t *testing.T) {
	env := newTestEnv(t)
	req := env.path("r.json")
	in := model.Input{
		Wall:      model.Wall{Width: 50, Height: 50},
		Inventory: []model.Frame{{ID: "f", Width: 10, Height: 10, Count: 1}},
	}
	if err := project.SaveRequest(req, in); err != nil {
		t.Fatalf("save request: %v", err)
	}

	err := env.run(t, "generate", req, "--algorithm", "hexagonal")
	if err == nil || !strings.Contains(err.Error(), "unknown algorithm") {
		t.Errorf("expected unknown algorithm error, got %v", err)
	}
}

func TestGenerate_InvalidWallFails(t *testing.T) {
	env := newTestEnv(t)
	req := env.path("r.json")
	in := model.Input{
		Wall:      model.Wall{Width: -5, Height: 50},
		Inventory: []model.Frame{{ID: "f", Width: 10, Height: 10, Count: 1}},
	}
	if err := project.SaveRequest(req, in); err != nil {
		t.Fatalf("save request: %v", err)
	}

	if err := env.run(t, "generate", req); err == nil {
		t.Error("expected generation error for a negative wall")
	}
}

func TestCompare_RejectsOversizedRequest(t *testing.T) {
	env := newTestEnv(t)
	req := env.path("r.json")
	in := model.Input{
		Wall:      model.Wall{Width: 50, Height: 50},
		Inventory: []model.Frame{{ID: "f", Width: 1, Height: 1, Count: worker.MaxRequestedFrames + 1}},
	}
	if err := project.SaveRequest(req, in); err != nil {
		t.Fatalf("save request: %v", err)
	}

	err := env.run(t, "compare", req)
	if err == nil || !strings.Contains(err.Error(), "invalid input") {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestLibraryAddAndImport(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "library", "add", "frame", "Panorama", "36", "12"); err != nil {
		t.Fatalf("library add: %v", err)
	}
	if err := env.run(t, "library", "add", "frame", "Panorama", "36", "12"); err == nil {
		t.Error("expected duplicate preset error")
	}
	if err := env.run(t, "library", "add", "wall", "Den", "-1", "12"); err == nil {
		t.Error("expected invalid width error")
	}

	csvPath := env.path("frames.csv")
	if err := os.WriteFile(csvPath, []byte("name,width,height,count\nTravel,9,12,2\nPanorama,36,12,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := env.run(t, "library", "import", csvPath); err != nil {
		t.Fatalf("library import: %v", err)
	}

	lib, err := project.LoadLibrary(env.library)
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	if lib.FindFrameByName("Travel") == nil {
		t.Error("expected imported Travel preset")
	}
	count := 0
	for _, f := range lib.Frames {
		if f.Name == "Panorama" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one Panorama preset, got %d", count)
	}
}

func TestConfigBackupAndRestore(t *testing.T) {
	env := newTestEnv(t)
	backup := env.path("backup.json")

	if err := env.run(t, "library", "add", "wall", "Den", "100", "80"); err != nil {
		t.Fatalf("library add: %v", err)
	}
	if err := env.run(t, "config", "backup", backup); err != nil {
		t.Fatalf("config backup: %v", err)
	}
	if err := os.Remove(env.library); err != nil {
		t.Fatal(err)
	}
	if err := env.run(t, "config", "restore", backup); err != nil {
		t.Fatalf("config restore: %v", err)
	}

	lib, err := project.LoadLibrary(env.library)
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	if lib.FindWallByName("Den") == nil {
		t.Error("expected restored Den wall preset")
	}
}

func TestFrameFromPreset(t *testing.T) {
	lib := model.DefaultLibrary()

	tests := []struct {
		spec      string
		wantCount int
		wantErr   bool
	}{
		{"8x10 Classic", 1, false},
		{"8x10 Classic:3", 3, false},
		{" 5x7 Portrait : 2", 2, false},
		{"8x10 Classic:0", 0, true},
		{"8x10 Classic:two", 0, true},
		{"Unknown:1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := frameFromPreset(&lib, tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && f.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", f.Count, tt.wantCount)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	ch := make(chan worker.Response, 4)
	n := 2
	ch <- worker.Response{Type: worker.TypeSolutionFound, Payload: &model.LayoutSolution{ID: "a", Score: 1}}
	ch <- worker.Response{Type: worker.TypeSolutionFound, Payload: &model.LayoutSolution{ID: "b", Score: 2}}
	ch <- worker.Response{Type: worker.TypeDone, Count: &n}
	close(ch)

	sols, total, err := collect(ch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sols) != 2 || total != 2 {
		t.Errorf("got %d solutions, total %d", len(sols), total)
	}

	failed := make(chan worker.Response, 1)
	failed <- worker.Response{Type: worker.TypeError, Message: "boom"}
	close(failed)
	if _, _, err := collect(failed); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected error carrying the message, got %v", err)
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("got %q %q %q", version, commit, date)
	}
}
