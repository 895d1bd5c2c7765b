package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	set "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/idelchi/spacemap/internal/fstree"
	"github.com/idelchi/spacemap/internal/scan"
	"github.com/idelchi/spacemap/internal/summary"
	"github.com/idelchi/spacemap/internal/treemap"
)

// english groups counts for the progress line (1234567 -> 1,234,567).
var english = message.NewPrinter(language.English)

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output to stderr if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

type scanConfig struct {
	workers int
	exclude set.Set[string]
	debug   bool
}

// runScan performs a full tree scan, drawing an in-place progress line on
// stderr while it runs when stderr is a terminal.
func runScan(ctx context.Context, path string, conf scanConfig) (*fstree.Node, error) {
	log := logger{enabled: conf.debug}

	enableProgress := !conf.debug && isatty.IsTerminal(os.Stderr.Fd())

	var hook func(scan.Snapshot)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		hook = func(snap scan.Snapshot) {
			msg := english.Sprintf("Scanning… %d files, %d dirs, %s",
				snap.ScannedFiles, snap.ScannedDirs, humanize.IBytes(snap.TotalBytes))
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	start := time.Now()

	node, err := scan.Run(ctx, path, scan.Options{
		Workers:    conf.workers,
		Exclude:    conf.exclude,
		OnProgress: hook,
	})

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return nil, err
	}

	log.printf("[debug]: scanned %s in %v\n", node.Path, time.Since(start))

	return node, nil
}

type summaryConfig struct {
	topN    int
	minSize int64
	exclude set.Set[string]
}

func runSummary(ctx context.Context, path string, conf summaryConfig) (*summary.Report, error) {
	return summary.Run(ctx, path, summary.Options{
		TopN:    conf.topN,
		MinSize: conf.minSize,
		Exclude: conf.exclude,
	})
}

// coloredRect pairs a layout rectangle with its palette color for output.
type coloredRect struct {
	treemap.Rect

	Color string `json:"color"`
}

// treemapRects lays node out and attaches the deterministic extension color
// to each rectangle.
func treemapRects(node *fstree.Node, threshold int64, width, height float64) []coloredRect {
	rects := treemap.Layout(node, threshold, width, height)

	colored := make([]coloredRect, len(rects))
	for i, r := range rects {
		colored[i] = coloredRect{
			Rect:  r,
			Color: treemap.Color(fstree.ExtensionOf(r.Path)),
		}
	}

	return colored
}
