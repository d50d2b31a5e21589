package model

import "github.com/google/uuid"

// FramePreset represents a reusable frame size.
type FramePreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewFramePreset creates a new FramePreset with a generated ID.
func NewFramePreset(name string, width, height float64) FramePreset {
	return FramePreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ToFrame converts a FramePreset into an inventory Frame with the given count.
// The preset ID is kept so placements trace back to the library entry.
func (fp FramePreset) ToFrame(count int) Frame {
	return Frame{
		ID:     fp.ID,
		Label:  fp.Name,
		Width:  fp.Width,
		Height: fp.Height,
		Count:  count,
	}
}

// WallPreset represents a reusable wall definition.
type WallPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewWallPreset creates a new WallPreset with a generated ID.
func NewWallPreset(name string, width, height float64) WallPreset {
	return WallPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

func (wp WallPreset) ToWall() Wall {
	return Wall{Width: wp.Width, Height: wp.Height}
}

// Library holds the user's saved frame and wall presets.
type Library struct {
	Frames []FramePreset `json:"frames"`
	Walls  []WallPreset  `json:"walls"`
}

// DefaultLibrary returns a library populated with common frame and wall sizes (inches).
func DefaultLibrary() Library {
	return Library{
		Frames: []FramePreset{
			NewFramePreset("4x6 Snapshot", 4, 6),
			NewFramePreset("5x7 Portrait", 5, 7),
			NewFramePreset("8x10 Classic", 8, 10),
			NewFramePreset("11x14 Medium", 11, 14),
			NewFramePreset("12x12 Square", 12, 12),
			NewFramePreset("16x20 Large", 16, 20),
			NewFramePreset("18x24 Poster", 18, 24),
			NewFramePreset("24x36 Statement", 24, 36),
		},
		Walls: []WallPreset{
			NewWallPreset("Hallway 8'x4'", 96, 48),
			NewWallPreset("Living room 12'x8'", 144, 96),
			NewWallPreset("Above sofa 7'x3'", 84, 36),
			NewWallPreset("Staircase 10'x9'", 120, 108),
		},
	}
}

// FindFrameByID returns a pointer to the frame preset with the given ID, or nil.
func (l *Library) FindFrameByID(id string) *FramePreset {
	for i := range l.Frames {
		if l.Frames[i].ID == id {
			return &l.Frames[i]
		}
	}
	return nil
}

// FindFrameByName returns a pointer to the first frame preset with the given name, or nil.
func (l *Library) FindFrameByName(name string) *FramePreset {
	for i := range l.Frames {
		if l.Frames[i].Name == name {
			return &l.Frames[i]
		}
	}
	return nil
}

// FindWallByName returns a pointer to the first wall preset with the given name, or nil.
func (l *Library) FindWallByName(name string) *WallPreset {
	for i := range l.Walls {
		if l.Walls[i].Name == name {
			return &l.Walls[i]
		}
	}
	return nil
}

// FrameNames returns the frame preset names in library order.
func (l *Library) FrameNames() []string {
	names := make([]string, len(l.Frames))
	for i, f := range l.Frames {
		names[i] = f.Name
	}
	return names
}

// WallNames returns the wall preset names in library order.
func (l *Library) WallNames() []string {
	names := make([]string, len(l.Walls))
	for i, w := range l.Walls {
		names[i] = w.Name
	}
	return names
}
