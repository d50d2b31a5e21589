package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/importer"
	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/project"
)

// requestCommand creates the request command group.
func (c *CLI) requestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Create and list generation requests",
	}

	cmd.AddCommand(c.requestNewCommand())
	cmd.AddCommand(c.requestRecentCommand())

	return cmd
}

// requestNewCommand builds a request file from library presets, imported
// drawings and inventories.
func (c *CLI) requestNewCommand() *cobra.Command {
	var (
		wallName  string
		width     float64
		height    float64
		dxfPath   string
		frames    []string
		inventory string
	)

	cmd := &cobra.Command{
		Use:   "new [request.toml|request.json]",
		Short: "Write a new request file",
		Long: `Write a new request file.

The wall comes from a library preset (--wall), explicit dimensions
(--width/--height) or a DXF elevation drawing (--dxf), which also supplies
the obstacles. Frames are library presets given as "name:count" (--frame,
repeatable) and/or a CSV or Excel inventory (--inventory).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			lib, err := project.LoadLibrary(c.libraryPath)
			if err != nil {
				return fmt.Errorf("load library: %w", err)
			}

			in := model.Input{Config: model.DefaultLayoutConfig()}
			in.Config.Spacing = c.config.DefaultSpacing
			in.Config.Margin = c.config.DefaultMargin
			c.config.ApplyToConfig(&in.Config)

			switch {
			case dxfPath != "":
				res := importer.ImportDXF(dxfPath)
				logImportProblems(logger, dxfPath, res.Warnings, res.Errors)
				if len(res.Errors) > 0 {
					return fmt.Errorf("import drawing %s: %s", dxfPath, res.Errors[0])
				}
				in.Wall = res.Wall
				in.Obstacles = res.Obstacles
			case wallName != "":
				wp := lib.FindWallByName(wallName)
				if wp == nil {
					return fmt.Errorf("no wall preset named %q (have: %s)", wallName, strings.Join(lib.WallNames(), ", "))
				}
				in.Wall = wp.ToWall()
			default:
				in.Wall = model.Wall{Width: width, Height: height}
			}
			if !(in.Wall.Width > 0 && in.Wall.Height > 0) {
				return fmt.Errorf("wall needs a positive size, use --wall, --dxf or --width/--height")
			}

			for _, spec := range frames {
				f, err := frameFromPreset(&lib, spec)
				if err != nil {
					return err
				}
				in.Inventory = append(in.Inventory, f)
			}
			if inventory != "" {
				res := importer.Import(inventory)
				logImportProblems(logger, inventory, res.Warnings, res.Errors)
				if len(res.Errors) > 0 {
					return fmt.Errorf("import inventory %s: %d errors", inventory, len(res.Errors))
				}
				in.Inventory = append(in.Inventory, res.Frames...)
			}

			if err := project.SaveRequest(args[0], in); err != nil {
				return fmt.Errorf("write request %s: %w", args[0], err)
			}
			printSuccess("Request with %d frames and %d obstacles", in.TotalRequested(), len(in.Obstacles))
			printFile(args[0])
			printNewline()
			printNextStep("Generate layouts", fmt.Sprintf("%s generate %s", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&wallName, "wall", "", "wall preset name")
	cmd.Flags().Float64Var(&width, "width", 0, "wall width (in)")
	cmd.Flags().Float64Var(&height, "height", 0, "wall height (in)")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "wall elevation drawing with obstacles")
	cmd.Flags().StringArrayVar(&frames, "frame", nil, `frame preset and count, e.g. "8x10 Classic:4"`)
	cmd.Flags().StringVar(&inventory, "inventory", "", "CSV or Excel frame inventory")
	cmd.MarkFlagsMutuallyExclusive("wall", "dxf", "width")
	cmd.MarkFlagsMutuallyExclusive("wall", "dxf", "height")

	return cmd
}

// frameFromPreset resolves "name:count" (count defaults to 1) against the
// library.
func frameFromPreset(lib *model.Library, spec string) (model.Frame, error) {
	name, countStr, hasCount := strings.Cut(spec, ":")
	count := 1
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || n < 1 {
			return model.Frame{}, fmt.Errorf("invalid frame count in %q", spec)
		}
		count = n
	}
	fp := lib.FindFrameByName(strings.TrimSpace(name))
	if fp == nil {
		return model.Frame{}, fmt.Errorf("no frame preset named %q (have: %s)", name, strings.Join(lib.FrameNames(), ", "))
	}
	return fp.ToFrame(count), nil
}

func (c *CLI) requestRecentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently generated requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(c.config.RecentRequests) == 0 {
				printInfo("No recent requests")
				return nil
			}
			for _, p := range c.config.RecentRequests {
				printFile(p)
			}
			return nil
		},
	}
}
