package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/gallerywall/internal/model"
)

// ErrUnsupportedFormat is returned for request files that are neither JSON
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadRequest reads a generation request from a .json or .toml file.
// Frames and obstacles without an ID receive one.
func LoadRequest(path string) (model.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Input{}, err
	}

	var in model.Input
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &in)
	case ".toml":
		_, err = toml.Decode(string(data), &in)
	default:
		return model.Input{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return model.Input{}, fmt.Errorf("failed to parse request %s: %w", path, err)
	}
	fillIDs(&in)
	return in, nil
}

// SaveRequest writes in to path, choosing the encoding by extension.
func SaveRequest(path string, in model.Input) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return writeJSON(path, in)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, buf.Bytes(), 0644)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func fillIDs(in *model.Input) {
	for i, f := range in.Inventory {
		if f.ID == "" {
			in.Inventory[i].ID = model.NewFrame(f.Label, f.Width, f.Height, f.Count).ID
		}
	}
	for i, o := range in.Obstacles {
		if o.ID == "" {
			in.Obstacles[i].ID = model.NewObstacle(o.Label, o.X, o.Y, o.Width, o.Height).ID
		}
	}
}
