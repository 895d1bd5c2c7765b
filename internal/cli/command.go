package cli

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	set "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/spacemap/internal/reveal"
)

// Execute runs the spacemap command line with the given version string.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:     "spacemap",
		Version: version,
		Short:   "Visualize where disk space goes",
		Long: heredoc.Doc(`
			spacemap scans a directory, aggregates sizes into a tree, and lays the
			largest files out as a squarified treemap.

			Scanning runs in parallel and tolerates unreadable entries: a file or
			directory that cannot be read is recorded with a diagnostic and a size
			of zero, and the scan carries on. Symbolic links are listed with their
			own size and never followed.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	root.AddCommand(
		newScanCmd(&debug),
		newTreemapCmd(&debug),
		newSummaryCmd(),
		newRevealCmd(),
	)

	return root
}

func newScanCmd(debug *bool) *cobra.Command {
	var (
		output  string
		exclude []string
		workers int
		topN    int
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory and report its size tree",
		Long: heredoc.Doc(`
			Scan a directory tree and report aggregate sizes.

			Table output shows totals and the largest immediate children; JSON
			output contains the entire tree. While scanning on a terminal, a
			progress line with live counters is written to stderr.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := runScan(cmd.Context(), pathArg(args), scanConfig{
				workers: workers,
				exclude: excludeSet(exclude),
				debug:   *debug,
			})
			if err != nil {
				return err
			}

			if output == "json" {
				return PrintJSON(node, os.Stdout)
			}

			return PrintTreeTable(node, topN, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Base names to skip (e.g. .git,node_modules)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scan parallelism (0 = number of CPUs)")
	cmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of children to show in table output")

	return cmd
}

func newTreemapCmd(debug *bool) *cobra.Command {
	var (
		output       string
		exclude      []string
		workers      int
		topN         int
		thresholdStr string
		width        float64
		height       float64
	)

	cmd := &cobra.Command{
		Use:   "treemap [path]",
		Short: "Scan a directory and lay it out as a treemap",
		Long: heredoc.Doc(`
			Scan a directory and compute squarified treemap rectangles for it.

			Files below the threshold are pruned, as are directories left with
			nothing to show. Each surviving file gets one rectangle, sized
			proportionally to its share of the total and colored by extension.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := humanize.ParseBytes(thresholdStr)
			if err != nil {
				return fmt.Errorf("invalid threshold: %w", err)
			}

			node, err := runScan(cmd.Context(), pathArg(args), scanConfig{
				workers: workers,
				exclude: excludeSet(exclude),
				debug:   *debug,
			})
			if err != nil {
				return err
			}

			rects := treemapRects(node, int64(threshold), width, height) //nolint:gosec // parsed size fits

			if output == "json" {
				return PrintJSON(rects, os.Stdout)
			}

			return PrintRectTable(rects, node.Size, topN, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Base names to skip (e.g. .git,node_modules)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scan parallelism (0 = number of CPUs)")
	cmd.Flags().IntVarP(&topN, "top", "t", 20, "Number of rectangles to show in table output")
	cmd.Flags().StringVar(&thresholdStr, "threshold", "1MB", "Minimum file size to render (e.g. 512KB)")
	cmd.Flags().Float64Var(&width, "width", 1024, "Viewport width in units")
	cmd.Flags().Float64Var(&height, "height", 768, "Viewport height in units")

	return cmd
}

func newSummaryCmd() *cobra.Command {
	var (
		output     string
		exclude    []string
		topN       int
		minSizeStr string
	)

	cmd := &cobra.Command{
		Use:   "summary [path]",
		Short: "Report flat statistics without building a tree",
		Long: heredoc.Doc(`
			Walk a directory and report flat statistics: totals, size per file
			extension, and the largest files. Faster than a full scan when only
			an overview is needed.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minSize, err := humanize.ParseBytes(minSizeStr)
			if err != nil {
				return fmt.Errorf("invalid min-size: %w", err)
			}

			report, err := runSummary(cmd.Context(), pathArg(args), summaryConfig{
				topN:    topN,
				minSize: int64(minSize), //nolint:gosec // parsed size fits
				exclude: excludeSet(exclude),
			})
			if err != nil {
				return err
			}

			if output == "json" {
				return PrintJSON(report, os.Stdout)
			}

			return PrintReport(report, topN, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Base names to skip (e.g. .git,node_modules)")
	cmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of top files and extensions to show")
	cmd.Flags().StringVar(&minSizeStr, "min-size", "0B", "Minimum file size to count (e.g. 1KB)")

	return cmd
}

func newRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <path>",
		Short: "Show a path in the system file manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reveal.Reveal(args[0])
		},
	}
}

// pathArg returns the positional path argument, defaulting to the current
// directory.
func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}

// excludeSet converts the repeated --exclude values to a set.
func excludeSet(names []string) set.Set[string] {
	if len(names) == 0 {
		return nil
	}

	return set.NewSet(names...)
}
