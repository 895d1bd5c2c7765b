package scan

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	set "github.com/deckarep/golang-set/v2"

	"github.com/idelchi/spacemap/internal/fstree"
)

// Options configures a scan.
type Options struct {
	// Workers bounds the number of extra goroutines scanning subtrees
	// (0 = GOMAXPROCS).
	Workers int
	// Exclude contains base names to skip entirely; excluded entries do
	// not appear in the tree and contribute nothing to sizes.
	Exclude set.Set[string]
	// OnProgress, if non-nil, receives throttled progress snapshots while
	// the scan runs plus one final snapshot equal to the finished tree's
	// totals. It is always invoked from a single goroutine.
	OnProgress func(Snapshot)
	// ProgressInterval is the gap between snapshots (default 120ms).
	ProgressInterval time.Duration
}

// Run scans the directory tree rooted at root and returns its finished,
// immutable tree. A root that does not exist, is not readable, or is not a
// directory fails the whole call with an *Error; failures on entries below
// the root are recorded on their nodes and never abort the scan.
//
// Cancelling ctx aborts the walk at the next directory dispatch and returns
// ctx.Err(); no tree is returned.
func Run(ctx context.Context, root string, opts Options) (*fstree.Node, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, RootError(root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, RootError(absRoot, err)
	}

	if !info.IsDir() {
		return nil, &Error{Code: CodeNotADirectory, Path: absRoot}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	progress := &tracker{}

	stop := progress.startForwarder(ctx, opts.OnProgress, opts.ProgressInterval)
	defer stop()

	// The root's listing is the one read that is fatal on failure.
	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, RootError(absRoot, err)
	}

	progress.dirScanned(absRoot)

	walker := &scanner{
		sem:      make(chan struct{}, workers),
		exclude:  opts.Exclude,
		progress: progress,
	}

	children := walker.scanChildren(ctx, absRoot, entries)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	node := &fstree.Node{
		Name:     filepath.Base(absRoot),
		Path:     absRoot,
		Kind:     fstree.KindDirectory,
		Size:     sumSizes(children),
		Children: children,
	}

	// Stop the forwarder before the final snapshot so deliveries never
	// interleave, then hand the caller totals that match the tree exactly.
	stop()

	if opts.OnProgress != nil {
		snap := progress.snapshot()
		snap.CurrentPath = absRoot
		opts.OnProgress(snap)
	}

	return node, nil
}

// scanner walks subtrees. Every worker owns the subtree it builds until it
// is handed back through its slot in the parent's child slice; the tracker
// is the only state touched from more than one goroutine.
type scanner struct {
	sem      chan struct{}
	exclude  set.Set[string]
	progress *tracker
}

// scanChildren fans dir's entries out as independent units of work. A child
// gets a fresh goroutine only when a semaphore slot is free and is scanned
// inline otherwise, so parallelism stays bounded without deadlocking the
// bottom-up join. Each slot of the result is written by exactly one
// goroutine.
func (s *scanner) scanChildren(ctx context.Context, dir string, entries []os.DirEntry) []*fstree.Node {
	paths := make([]string, 0, len(entries))

	for _, entry := range entries {
		if s.exclude != nil && s.exclude.Contains(entry.Name()) {
			continue
		}

		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	nodes := make([]*fstree.Node, len(paths))

	var wg sync.WaitGroup

	for i, path := range paths {
		select {
		case s.sem <- struct{}{}:
			wg.Add(1)

			go func(i int, path string) {
				defer wg.Done()
				defer func() { <-s.sem }()

				nodes[i] = s.scanPath(ctx, path)
			}(i, path)
		default:
			nodes[i] = s.scanPath(ctx, path)
		}
	}

	wg.Wait()

	return nodes
}

// scanPath classifies one entry and builds its subtree. Failures are
// absorbed into the returned node.
func (s *scanner) scanPath(ctx context.Context, path string) *fstree.Node {
	info, err := os.Lstat(path)
	if err != nil {
		return errorNode(path, fstree.KindOther, err)
	}

	switch kind := fstree.KindFromMode(info.Mode()); kind {
	case fstree.KindFile:
		s.progress.leafScanned(countFile, info.Size(), path)

		return &fstree.Node{
			Name:      filepath.Base(path),
			Path:      path,
			Kind:      fstree.KindFile,
			Size:      info.Size(),
			Extension: fstree.ExtensionOf(path),
		}
	case fstree.KindDirectory:
		// Checked once per directory dispatch; a cancelled walk stops
		// descending and Run discards the partial tree.
		if ctx.Err() != nil {
			return errorNode(path, fstree.KindDirectory, ctx.Err())
		}

		s.progress.dirScanned(path)

		entries, err := os.ReadDir(path)
		if err != nil {
			return errorNode(path, fstree.KindDirectory, err)
		}

		children := s.scanChildren(ctx, path, entries)

		return &fstree.Node{
			Name:     filepath.Base(path),
			Path:     path,
			Kind:     fstree.KindDirectory,
			Size:     sumSizes(children),
			Children: children,
		}
	case fstree.KindSymlink:
		// Recorded as a leaf with the link's own size, never followed.
		// This eliminates cycles by policy rather than detection.
		s.progress.leafScanned(countOtherLeaf, info.Size(), path)

		return &fstree.Node{
			Name: filepath.Base(path),
			Path: path,
			Kind: fstree.KindSymlink,
			Size: info.Size(),
		}
	default:
		s.progress.leafScanned(countOtherLeaf, info.Size(), path)

		return &fstree.Node{
			Name: filepath.Base(path),
			Path: path,
			Kind: fstree.KindOther,
			Size: info.Size(),
		}
	}
}

// errorNode records a per-entry failure: the diagnostic is kept, the size is
// zeroed so the entry contributes nothing to ancestor sums, and the walk
// goes on.
func errorNode(path string, kind fstree.Kind, err error) *fstree.Node {
	return &fstree.Node{
		Name:  filepath.Base(path),
		Path:  path,
		Kind:  kind,
		Error: err.Error(),
	}
}

func sumSizes(nodes []*fstree.Node) int64 {
	var total int64
	for _, n := range nodes {
		total += n.Size
	}

	return total
}
