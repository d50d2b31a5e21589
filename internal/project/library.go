package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/gallerywall/internal/model"
)

// DefaultLibraryPath returns the default file path for the frame library.
// This is located at ~/.gallerywall/library.json.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "library.json")
}

// SaveLibrary writes the library to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveLibrary(path string, lib model.Library) error {
	return writeJSON(path, lib)
}

// LoadLibrary reads the library from the specified JSON file.
// If the file does not exist, it returns the default library and saves it.
func LoadLibrary(path string) (model.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := model.DefaultLibrary()
			if saveErr := SaveLibrary(path, lib); saveErr != nil {
				return lib, saveErr
			}
			return lib, nil
		}
		return model.Library{}, err
	}
	var lib model.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return model.Library{}, err
	}
	return lib, nil
}

// ImportLibrary merges the library stored at path into existing.
// Presets whose IDs are already present are skipped.
func ImportLibrary(path string, existing model.Library) (model.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Library
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeLibrary(existing, imported), nil
}

// MergeLibrary appends the presets of imported that existing does not have.
func MergeLibrary(existing, imported model.Library) model.Library {
	frameIDs := make(map[string]bool, len(existing.Frames))
	for _, f := range existing.Frames {
		frameIDs[f.ID] = true
	}
	wallIDs := make(map[string]bool, len(existing.Walls))
	for _, w := range existing.Walls {
		wallIDs[w.ID] = true
	}

	for _, f := range imported.Frames {
		if !frameIDs[f.ID] {
			existing.Frames = append(existing.Frames, f)
			frameIDs[f.ID] = true
		}
	}
	for _, w := range imported.Walls {
		if !wallIDs[w.ID] {
			existing.Walls = append(existing.Walls, w)
			wallIDs[w.ID] = true
		}
	}
	return existing
}
