package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/export"
	"github.com/piwi3910/gallerywall/internal/importer"
	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/project"
	"github.com/piwi3910/gallerywall/internal/worker"
)

// requestFlags are the layout overrides shared by generate, compare and
// estimate. Only flags the user set replace request values.
type requestFlags struct {
	algorithm string
	spacing   float64
	margin    float64
	forceAll  bool
	shelves   int
	inventory string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "strategy: "+algorithmList())
	cmd.Flags().Float64Var(&f.spacing, "spacing", 0, "minimum gap between frames (in)")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "minimum gap from the wall edges (in)")
	cmd.Flags().BoolVar(&f.forceAll, "force-all", false, "only accept layouts that place every frame")
	cmd.Flags().IntVar(&f.shelves, "shelves", 0, "number of shelves for the skyline strategy")
	cmd.Flags().StringVar(&f.inventory, "inventory", "", "replace the request's frames with a CSV or Excel inventory")
}

// loadRequest reads the request file, applies the config defaults and then
// the flags the user set.
func (c *CLI) loadRequest(cmd *cobra.Command, path string, f *requestFlags) (model.Input, error) {
	logger := loggerFromContext(cmd.Context())

	in, err := project.LoadRequest(path)
	if err != nil {
		return model.Input{}, fmt.Errorf("load request %s: %w", path, err)
	}

	if f.inventory != "" {
		res := importer.Import(f.inventory)
		logImportProblems(logger, f.inventory, res.Warnings, res.Errors)
		if len(res.Errors) > 0 {
			return model.Input{}, fmt.Errorf("import inventory %s: %d errors", f.inventory, len(res.Errors))
		}
		in.Inventory = res.Frames
		logger.Debug("imported inventory", "frames", len(res.Frames), "file", f.inventory)
	}

	c.config.ApplyToConfig(&in.Config)

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		alg, ok := model.ParseAlgorithm(f.algorithm)
		if !ok {
			return model.Input{}, fmt.Errorf("unknown algorithm %q (want one of %s)", f.algorithm, algorithmList())
		}
		in.Config.Algorithm = alg
	}
	if flags.Changed("spacing") {
		in.Config.Spacing = f.spacing
	}
	if flags.Changed("margin") {
		in.Config.Margin = f.margin
	}
	if flags.Changed("force-all") {
		in.Config.ForceAll = f.forceAll
	}
	if flags.Changed("shelves") {
		in.Config.ShelfCount = f.shelves
	}
	return in, nil
}

func algorithmList() string {
	names := make([]string, 0, len(model.Algorithms()))
	for _, a := range model.Algorithms() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags    requestFlags
		output   string
		pdfPath  string
		labels   string
		labelFor int
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "generate [request.toml|request.json]",
		Short: "Generate gallery wall layouts for a request",
		Long: `Generate gallery wall layouts for a request.

The request file describes the wall, the frames to hang and the obstacles to
keep clear. Layouts are streamed as they are found; the best ones can be
written as JSON, drawn into a PDF, and turned into QR hanging labels that
tell where each nail goes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadRequest(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], in, generateOutputs{
				results:  output,
				pdf:      pdfPath,
				labels:   labels,
				labelFor: labelFor,
			}, seed)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layouts as JSON (default: <request>.results.json)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "draw the layouts into a PDF")
	cmd.Flags().StringVar(&labels, "labels", "", "write QR hanging labels for one layout to a PDF")
	cmd.Flags().IntVar(&labelFor, "label-layout", 1, "layout number the hanging labels are made for")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for repeatable runs (0 = random)")

	return cmd
}

type generateOutputs struct {
	results  string
	pdf      string
	labels   string
	labelFor int
}

func (c *CLI) runGenerate(ctx context.Context, requestPath string, in model.Input, out generateOutputs, seed uint64) error {
	logger := loggerFromContext(ctx)
	if abs, err := filepath.Abs(requestPath); err == nil {
		c.rememberRequest(logger, abs)
	}

	logger.Debug("generating", "algorithm", in.Config.Algorithm, "frames", in.TotalRequested(), "obstacles", len(in.Obstacles))
	prog := newProgress(logger)

	solutions, total, err := collect(worker.New(c.newOrchestrator(logger, seed)).Generate(ctx, in))
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d layouts", total))

	if len(solutions) == 0 {
		printWarning("No layout found for %d frames on a %g x %g in wall", in.TotalRequested(), in.Wall.Width, in.Wall.Height)
		return nil
	}

	printSolutions(in, solutions)
	printNewline()

	resultsPath := out.results
	if resultsPath == "" {
		resultsPath = strings.TrimSuffix(requestPath, filepath.Ext(requestPath)) + ".results.json"
	}
	if err := project.SaveResults(resultsPath, in, solutions); err != nil {
		return fmt.Errorf("write results %s: %w", resultsPath, err)
	}
	printSuccess("Saved %d layouts", len(solutions))
	printFile(resultsPath)

	if out.pdf != "" {
		if err := export.ExportPDF(out.pdf, in, solutions); err != nil {
			return fmt.Errorf("export pdf %s: %w", out.pdf, err)
		}
		printFile(out.pdf)
	}

	if out.labels != "" {
		if out.labelFor < 1 || out.labelFor > len(solutions) {
			return fmt.Errorf("label layout %d out of range 1..%d", out.labelFor, len(solutions))
		}
		if err := export.ExportLabels(out.labels, in, solutions[out.labelFor-1], out.labelFor); err != nil {
			return fmt.Errorf("export labels %s: %w", out.labels, err)
		}
		printFile(out.labels)
	}

	if out.pdf == "" {
		printNewline()
		printNextStep("Draw them", fmt.Sprintf("%s generate %s --pdf layouts.pdf", appName, requestPath))
	}
	return nil
}

// collect drains a generation stream. It returns the emitted solutions and
// the total reported by DONE, or the message of an ERROR.
func collect(stream <-chan worker.Response) ([]model.LayoutSolution, int, error) {
	var solutions []model.LayoutSolution
	total := 0
	for resp := range stream {
		switch resp.Type {
		case worker.TypeSolutionFound:
			if resp.Payload != nil {
				solutions = append(solutions, *resp.Payload)
			}
		case worker.TypeDone:
			if resp.Count != nil {
				total = *resp.Count
			}
		case worker.TypeError:
			return solutions, total, fmt.Errorf("generation failed: %s", resp.Message)
		}
	}
	return solutions, total, nil
}

func printSolutions(in model.Input, solutions []model.LayoutSolution) {
	requested := in.TotalRequested()
	rows := make([][]string, 0, len(solutions))
	for i, sol := range solutions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d / %d", sol.Score, requested),
			sol.ID[:min(8, len(sol.ID))],
		})
	}
	printTitle("Layouts (%s)", in.Config.Algorithm)
	fmt.Println(renderTable([]string{"#", "Frames", "ID"}, rows))
}

// logImportProblems reports importer warnings and errors.
func logImportProblems(logger *log.Logger, file string, warnings, errs []string) {
	for _, w := range warnings {
		logger.Warn(w, "file", file)
	}
	for _, e := range errs {
		logger.Error(e, "file", file)
	}
}
