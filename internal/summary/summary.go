package summary

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	set "github.com/deckarep/golang-set/v2"

	"github.com/idelchi/spacemap/internal/fstree"
	"github.com/idelchi/spacemap/internal/scan"
)

// ExtStat aggregates the files sharing one extension.
type ExtStat struct {
	// Count is the number of files.
	Count int64 `json:"count"`
	// Bytes is their cumulative size.
	Bytes int64 `json:"bytes"`
}

// FileSize is one file path with its size.
type FileSize struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Report holds the flat statistics of one traversal.
type Report struct {
	// Files is the number of regular files seen.
	Files int64 `json:"files"`
	// Dirs is the number of directories seen.
	Dirs int64 `json:"dirs"`
	// Bytes is the cumulative size of all counted files.
	Bytes int64 `json:"bytes"`
	// Errors is the number of entries that could not be read.
	Errors int64 `json:"errors"`
	// Extensions maps lowercase extensions (no dot, "" for none) to their
	// aggregates.
	Extensions map[string]ExtStat `json:"extensions"`
	// Largest holds the TopN largest files, descending.
	Largest []FileSize `json:"largest"`
	// Elapsed is the traversal's wall time.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a summary run.
type Options struct {
	// TopN is the number of largest files to keep (default 10).
	TopN int
	// MinSize excludes files smaller than this many bytes.
	MinSize int64
	// Exclude contains base names whose subtrees are skipped.
	Exclude set.Set[string]
}

// collector aggregates results from concurrent fastwalk callbacks. fastwalk
// invokes the callback from several goroutines, so every write goes through
// the mutex.
type collector struct {
	mu         sync.Mutex
	extensions map[string]ExtStat
	files      []FileSize
	fileCount  int64
	dirCount   int64
	totalBytes int64
	errorCount int64
}

func (c *collector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirCount++
}

func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

func (c *collector) addFile(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size

	ext := fstree.ExtensionOf(path)
	stat := c.extensions[ext]
	stat.Count++
	stat.Bytes += size
	c.extensions[ext] = stat

	c.files = append(c.files, FileSize{Path: path, Size: size})
}

// finalize sorts and trims the collected files into a Report.
func (c *collector) finalize(topN int) *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.files, func(i, j int) bool {
		return c.files[i].Size > c.files[j].Size
	})

	largest := c.files
	if len(largest) > topN {
		largest = largest[:topN]
	}

	return &Report{
		Files:      c.fileCount,
		Dirs:       c.dirCount,
		Bytes:      c.totalBytes,
		Errors:     c.errorCount,
		Extensions: c.extensions,
		Largest:    largest,
	}
}

// Run walks the tree under root in parallel and returns its flat statistics.
// Unlike scan.Run it builds no tree; it exists for a quick overview of what
// is in a directory. The same root preconditions apply, entry-level read
// failures only bump the error counter, and ctx cancels the walk.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, scan.RootError(root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, scan.RootError(absRoot, err)
	}

	if !info.IsDir() {
		return nil, &scan.Error{Code: scan.CodeNotADirectory, Path: absRoot}
	}

	if opts.TopN <= 0 {
		opts.TopN = 10
	}

	results := &collector{extensions: make(map[string]ExtStat)}

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // symlinks are never followed
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			results.addError()

			return nil //nolint:nilerr // entry-level failures never abort the walk
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if opts.Exclude != nil && opts.Exclude.Contains(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			results.addDir()

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			results.addError()

			return nil //nolint:nilerr // entry-level failures never abort the walk
		}

		if fileInfo.Size() < opts.MinSize {
			return nil
		}

		results.addFile(path, fileInfo.Size())

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	report := results.finalize(opts.TopN)
	report.Elapsed = time.Since(start)

	return report, nil
}
