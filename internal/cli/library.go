package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/importer"
	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/project"
)

// libraryCommand creates the library command group for frame and wall presets.
func (c *CLI) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage saved frame and wall presets",
	}

	cmd.AddCommand(c.libraryListCommand())
	cmd.AddCommand(c.libraryAddCommand())
	cmd.AddCommand(c.libraryImportCommand())
	cmd.AddCommand(c.libraryExportCommand())

	return cmd
}

func (c *CLI) libraryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List frame and wall presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}

			frameRows := make([][]string, 0, len(lib.Frames))
			for _, f := range lib.Frames {
				frameRows = append(frameRows, []string{f.ID, f.Name, fmt.Sprintf("%g x %g", f.Width, f.Height)})
			}
			printTitle("Frames")
			fmt.Println(renderTable([]string{"ID", "Name", "Size (in)"}, frameRows))

			wallRows := make([][]string, 0, len(lib.Walls))
			for _, w := range lib.Walls {
				wallRows = append(wallRows, []string{w.ID, w.Name, fmt.Sprintf("%g x %g", w.Width, w.Height)})
			}
			printTitle("Walls")
			fmt.Println(renderTable([]string{"ID", "Name", "Size (in)"}, wallRows))
			printDetail("Library: %s", c.libraryPath)
			return nil
		},
	}
}

// libraryAddCommand adds one preset: "library add frame|wall NAME WIDTH HEIGHT".
func (c *CLI) libraryAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "add [frame|wall] [name] [width] [height]",
		Short:     "Add a frame or wall preset",
		Args:      cobra.ExactArgs(4),
		ValidArgs: []string{"frame", "wall"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, name := args[0], strings.TrimSpace(args[1])
			w, err := parsePositive(args[2], "width")
			if err != nil {
				return err
			}
			h, err := parsePositive(args[3], "height")
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("preset name must not be empty")
			}

			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}
			switch kind {
			case "frame":
				if lib.FindFrameByName(name) != nil {
					return fmt.Errorf("frame preset %q already exists", name)
				}
				lib.Frames = append(lib.Frames, model.NewFramePreset(name, w, h))
			case "wall":
				if lib.FindWallByName(name) != nil {
					return fmt.Errorf("wall preset %q already exists", name)
				}
				lib.Walls = append(lib.Walls, model.NewWallPreset(name, w, h))
			default:
				return fmt.Errorf("unknown preset kind %q (want frame or wall)", kind)
			}

			if err := project.SaveLibrary(c.libraryPath, lib); err != nil {
				return fmt.Errorf("save library: %w", err)
			}
			printSuccess("Added %s preset %q (%g x %g in)", kind, name, w, h)
			return nil
		},
	}
}

// libraryImportCommand merges presets from another library file, a frame
// inventory spreadsheet or a wall drawing.
func (c *CLI) libraryImportCommand() *cobra.Command {
	var wallName string

	cmd := &cobra.Command{
		Use:   "import [library.json|frames.csv|frames.xlsx|wall.dxf]",
		Short: "Import presets from a library, inventory or drawing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}
			beforeFrames, beforeWalls := len(lib.Frames), len(lib.Walls)

			switch strings.ToLower(filepath.Ext(path)) {
			case ".json":
				lib, err = project.ImportLibrary(path, lib)
				if err != nil {
					return fmt.Errorf("import library %s: %w", path, err)
				}
			case ".dxf":
				res := importer.ImportDXF(path)
				logImportProblems(logger, path, res.Warnings, res.Errors)
				if len(res.Errors) > 0 {
					return fmt.Errorf("import drawing %s: %s", path, res.Errors[0])
				}
				name := wallName
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				lib.Walls = append(lib.Walls, model.NewWallPreset(name, res.Wall.Width, res.Wall.Height))
				if len(res.Obstacles) > 0 {
					printInfo("%d obstacles are not stored in presets; use '%s request new --dxf %s' to keep them", len(res.Obstacles), appName, path)
				}
			default:
				res := importer.Import(path)
				logImportProblems(logger, path, res.Warnings, res.Errors)
				if len(res.Frames) == 0 {
					return fmt.Errorf("no frames found in %s", path)
				}
				for _, f := range res.Frames {
					name := f.Label
					if name == "" {
						name = fmt.Sprintf("%gx%g", f.Width, f.Height)
					}
					if lib.FindFrameByName(name) != nil {
						logger.Debug("skipping existing preset", "name", name)
						continue
					}
					lib.Frames = append(lib.Frames, model.NewFramePreset(name, f.Width, f.Height))
				}
			}

			if err := project.SaveLibrary(c.libraryPath, lib); err != nil {
				return fmt.Errorf("save library: %w", err)
			}
			printSuccess("Imported %d frame and %d wall presets", len(lib.Frames)-beforeFrames, len(lib.Walls)-beforeWalls)
			printDetail("Library: %s", c.libraryPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&wallName, "name", "", "preset name for an imported wall drawing (default: file name)")
	return cmd
}

func (c *CLI) libraryExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [library.json]",
		Short: "Write the library to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}
			if err := project.SaveLibrary(args[0], lib); err != nil {
				return fmt.Errorf("export library: %w", err)
			}
			printSuccess("Exported %d frame and %d wall presets", len(lib.Frames), len(lib.Walls))
			printFile(args[0])
			return nil
		},
	}
}

func parsePositive(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", what, s)
	}
	return v, nil
}
