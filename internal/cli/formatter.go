package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/spacemap/internal/fstree"
	"github.com/idelchi/spacemap/internal/summary"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON writes v as indented JSON.
func PrintJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTreeTable outputs a scanned tree's totals and its largest immediate
// children in human-readable form.
func PrintTreeTable(node *fstree.Node, topN int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	children := make([]*fstree.Node, len(node.Children))
	copy(children, node.Children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Size > children[j].Size
	})

	if topN > 0 && len(children) > topN {
		children = children[:topN]
	}

	fmt.Fprintf(w, "\nLargest in %s:\t\t\n", node.Path)

	for i, child := range children {
		pct := 0.0
		if node.Size > 0 {
			pct = 100.0 * float64(child.Size) / float64(node.Size)
		}

		marker := ""
		if child.Error != "" {
			marker = "  [" + child.Error + "]"
		}

		fmt.Fprintf(w, "  %d) %s\t%s\t%s (%.1f%%)%s\n",
			i+1, child.Name, child.Kind, humanize.IBytes(uint64(child.Size)), pct, marker) //nolint:gosec // sizes are non-negative
	}

	var files, dirs, errored int64

	node.Walk(func(n *fstree.Node) bool {
		switch {
		case n.Error != "":
			errored++
		case n.Kind == fstree.KindFile:
			files++
		case n.Kind == fstree.KindDirectory:
			dirs++
		}

		return true
	})

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(uint64(node.Size)), node.Size) //nolint:gosec // sizes are non-negative
	fmt.Fprintf(w, "Files:\t%s\n", english.Sprintf("%d", files))
	fmt.Fprintf(w, "Directories:\t%s\n", english.Sprintf("%d", dirs))

	if errored > 0 {
		fmt.Fprintf(w, "Unreadable entries:\t%s\n", english.Sprintf("%d", errored))
	}

	return w.Flush()
}

// PrintRectTable outputs the largest treemap rectangles in human-readable
// form. total is the scanned tree's full size, for percentage context.
func PrintRectTable(rects []coloredRect, total int64, topN int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	ordered := make([]coloredRect, len(rects))
	copy(ordered, rects)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value > ordered[j].Value
	})

	if topN > 0 && len(ordered) > topN {
		ordered = ordered[:topN]
	}

	fmt.Fprintf(w, "\nTreemap (%d rectangles):\t\t\n", len(rects))

	for i, r := range ordered {
		pct := 0.0
		if total > 0 {
			pct = 100.0 * float64(r.Value) / float64(total)
		}

		fmt.Fprintf(w, "  %d) %s\t%s (%.1f%%)\t%.0fx%.0f @ (%.0f,%.0f)\t%s\n",
			i+1, r.Path, humanize.IBytes(uint64(r.Value)), pct, r.W, r.H, r.X, r.Y, r.Color) //nolint:gosec // sizes are non-negative
	}

	return w.Flush()
}

// PrintReport outputs a flat summary report in human-readable form.
func PrintReport(report *summary.Report, topN int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nTop extensions:\t\t")

	exts := make([]string, 0, len(report.Extensions))
	for ext := range report.Extensions {
		exts = append(exts, ext)
	}

	sort.Slice(exts, func(i, j int) bool {
		a, b := report.Extensions[exts[i]], report.Extensions[exts[j]]
		if a.Bytes != b.Bytes {
			return a.Bytes > b.Bytes
		}

		return exts[i] < exts[j]
	})

	shown := exts
	if topN > 0 && len(shown) > topN {
		shown = shown[:topN]
	}

	for i, ext := range shown {
		stat := report.Extensions[ext]

		pct := 0.0
		if report.Bytes > 0 {
			pct = 100.0 * float64(stat.Bytes) / float64(report.Bytes)
		}

		if ext == "" {
			ext = `""`
		}

		fmt.Fprintf(w, "  %d) %s:\t%d files, %s (%.1f%%)\n",
			i+1, ext, stat.Count, humanize.IBytes(uint64(stat.Bytes)), pct) //nolint:gosec // sizes are non-negative
	}

	fmt.Fprintln(w, "\nTop files:\t\t")

	for i, f := range report.Largest {
		pct := 0.0
		if report.Bytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(report.Bytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			i+1, f.Path, humanize.IBytes(uint64(f.Size)), pct) //nolint:gosec // sizes are non-negative
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%s\n", english.Sprintf("%d", report.Files))
	fmt.Fprintf(w, "Total directories:\t%s\n", english.Sprintf("%d", report.Dirs))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(uint64(report.Bytes)), report.Bytes) //nolint:gosec // sizes are non-negative

	if report.Errors > 0 {
		fmt.Fprintf(w, "Errors:\t%d\n", report.Errors)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}
