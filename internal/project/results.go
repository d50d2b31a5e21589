package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/gallerywall/internal/model"
)

// ErrNoSolutions is returned when a results file holds no layouts.
var ErrNoSolutions = errors.New("no solutions")

// Results is a saved generation run: the request and its solutions.
type Results struct {
	CreatedAt string                 `json:"created_at"`
	Input     model.Input            `json:"input"`
	Solutions []model.LayoutSolution `json:"solutions"`
}

// SaveResults writes a generation run to a JSON file.
func SaveResults(path string, in model.Input, solutions []model.LayoutSolution) error {
	res := Results{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     in,
		Solutions: solutions,
	}
	if res.Solutions == nil {
		res.Solutions = []model.LayoutSolution{}
	}
	return writeJSON(path, res)
}

// LoadResults reads a generation run saved by SaveResults.
// It returns ErrNoSolutions when the file holds none.
func LoadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, err
	}
	var res Results
	if err := json.Unmarshal(data, &res); err != nil {
		return Results{}, fmt.Errorf("failed to parse results %s: %w", path, err)
	}
	if len(res.Solutions) == 0 {
		return res, fmt.Errorf("%s: %w", path, ErrNoSolutions)
	}
	return res, nil
}
