package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
)

// writeDXF draws axis-aligned rectangles as LINE entities and circles, and
// saves the drawing.
func writeDXF(t *testing.T, rects [][4]float64, circles [][3]float64) string {
	t.Helper()
	d := dxf.NewDrawing()
	for _, r := range rects {
		x0, y0, x1, y1 := r[0], r[1], r[0]+r[2], r[1]+r[3]
		edges := [][4]float64{{x0, y0, x1, y0}, {x1, y0, x1, y1}, {x1, y1, x0, y1}, {x0, y1, x0, y0}}
		for _, e := range edges {
			if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
				t.Fatalf("failed to add line: %v", err)
			}
		}
	}
	for _, c := range circles {
		if _, err := d.Circle(c[0], c[1], 0, c[2]); err != nil {
			t.Fatalf("failed to add circle: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "wall.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestImportDXF_WallAndObstacles(t *testing.T) {
	path := writeDXF(t,
		[][4]float64{
			{20, 30, 20, 20}, // window, drawn before the wall
			{0, 0, 100, 60},  // wall
		},
		[][3]float64{{70, 20, 5}}, // round vent
	)

	result := ImportDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !near(result.Wall.Width, 100) || !near(result.Wall.Height, 60) {
		t.Errorf("expected 100x60 wall, got %+v", result.Wall)
	}
	if len(result.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(result.Obstacles))
	}

	// Obstacles are ordered by size; y is measured from the top of the wall.
	window := result.Obstacles[0]
	if !near(window.X, 20) || !near(window.Y, 10) || !near(window.Width, 20) || !near(window.Height, 20) {
		t.Errorf("unexpected window obstacle: %+v", window)
	}
	vent := result.Obstacles[1]
	if !near(vent.X, 65) || !near(vent.Y, 35) || !near(vent.Width, 10) || !near(vent.Height, 10) {
		t.Errorf("unexpected vent obstacle: %+v", vent)
	}
}

func TestImportDXF_SkipsShapesOutsideWall(t *testing.T) {
	path := writeDXF(t, [][4]float64{{0, 0, 50, 40}, {45, 10, 20, 10}}, nil)

	result := ImportDXF(path)
	if len(result.Obstacles) != 0 {
		t.Errorf("expected no obstacles, got %+v", result.Obstacles)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warning for shape outside the wall")
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	if result := ImportDXF("/nonexistent/wall.dxf"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestChainSegments_OpenChainIgnored(t *testing.T) {
	segs := []segment{
		{start: point{0, 0}, end: point{10, 0}},
		{start: point{10, 0}, end: point{10, 10}},
	}
	if got := chainSegments(segs, 0.01); len(got) != 0 {
		t.Errorf("expected no closed outlines, got %v", got)
	}
}
