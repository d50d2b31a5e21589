package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/engine"
	"github.com/piwi3910/gallerywall/internal/export"
	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/piwi3910/gallerywall/internal/worker"
)

// compareCommand creates the compare command, which runs several strategies
// on one request and ranks them.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		flags   requestFlags
		only    []string
		pdfPath string
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "compare [request.toml|request.json]",
		Short: "Run every strategy on a request and compare them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadRequest(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if err := worker.Validate(in); err != nil {
				return err
			}

			var algorithms []model.Algorithm
			for _, name := range only {
				alg, ok := model.ParseAlgorithm(name)
				if !ok {
					return fmt.Errorf("unknown algorithm %q (want one of %s)", name, algorithmList())
				}
				algorithms = append(algorithms, alg)
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			results := engine.CompareAlgorithms(ctx, in, algorithms, c.searchOptions(seed))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			prog.done(fmt.Sprintf("Compared %d strategies", len(results)))

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{
					string(r.Algorithm),
					fmt.Sprintf("%d", r.SolutionCount),
					fmt.Sprintf("%d / %d", r.BestScore, r.Requested),
					fmt.Sprintf("%.1f%%", r.CoveragePercent),
					r.Elapsed.Round(time.Millisecond).String(),
				})
			}
			printTitle("Strategy comparison")
			fmt.Println(renderTable([]string{"Strategy", "Layouts", "Best", "Coverage", "Time"}, rows))

			best := engine.Best(results)
			if best == nil || best.BestScore == 0 {
				printWarning("No strategy placed any frame")
				return nil
			}
			printSuccess("Best strategy: %s (%d of %d frames)", best.Algorithm, best.BestScore, best.Requested)

			if pdfPath != "" {
				if err := export.ExportPDF(pdfPath, in, best.Solutions); err != nil {
					return fmt.Errorf("export pdf %s: %w", pdfPath, err)
				}
				printFile(pdfPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&only, "only", nil, "compare only these strategies")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "draw the best strategy's layouts into a PDF")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for repeatable runs (0 = random)")

	return cmd
}

// estimateCommand creates the estimate command, which reports the capacity
// heuristics without searching.
func (c *CLI) estimateCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "estimate [request.toml|request.json]",
		Short: "Estimate how many frames of a request fit on the wall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.loadRequest(cmd, args[0], &flags)
			if err != nil {
				return err
			}

			requested := in.TotalRequested()
			capacity := engine.EstimateMaxCapacity(in)

			printTitle("Capacity estimate")
			printKeyValue("Wall", fmt.Sprintf("%g x %g in", in.Wall.Width, in.Wall.Height))
			printKeyValue("Available area", fmt.Sprintf("%.1f sq in", engine.AvailableArea(in)))
			printKeyValue("Frames requested", fmt.Sprintf("%d", requested))
			printKeyValue("Estimated fit", fmt.Sprintf("%d", capacity))

			switch {
			case engine.IsPhysicallyImpossible(in):
				printWarning("The frames cover more area than the wall offers; not all of them can fit")
			case capacity < requested:
				printInfo("Probably %d of %d frames fit; try --force-all only with fewer frames", capacity, requested)
			default:
				printSuccess("All frames should fit")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
