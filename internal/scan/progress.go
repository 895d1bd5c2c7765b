package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default gap between progress snapshots.
const DefaultProgressInterval = 120 * time.Millisecond

// Snapshot is a point-in-time summary of scan counters, not a partial tree.
// Within one scan every successive snapshot's counters are >= the previous
// snapshot's, and the final snapshot equals the finished tree's totals.
type Snapshot struct {
	// ScannedFiles is the number of regular files classified so far.
	ScannedFiles uint64 `json:"scannedFiles"`
	// ScannedDirs is the number of directories classified so far.
	ScannedDirs uint64 `json:"scannedDirs"`
	// TotalBytes is the leaf bytes discovered so far. It converges to the
	// root's aggregate size only at scan completion.
	TotalBytes uint64 `json:"totalBytes"`
	// CurrentPath is the entry most recently touched by any worker.
	CurrentPath string `json:"currentPath,omitempty"`
}

// tracker holds the only state shared between scan workers: atomic counters
// and the current path. Snapshots are read and forwarded by a single
// goroutine, never by workers.
type tracker struct {
	files   atomic.Uint64
	dirs    atomic.Uint64
	bytes   atomic.Uint64
	current atomic.Pointer[string]
}

// leafScanned records a classified leaf entry.
func (t *tracker) leafScanned(kind kindCounter, size int64, path string) {
	if kind == countFile {
		t.files.Add(1)
	}

	if size > 0 {
		t.bytes.Add(uint64(size))
	}

	t.current.Store(&path)
}

// dirScanned records a classified directory before its listing is read, so
// unreadable directories still count.
func (t *tracker) dirScanned(path string) {
	t.dirs.Add(1)
	t.current.Store(&path)
}

// kindCounter selects which counter a leaf contributes to.
type kindCounter uint8

const (
	countFile kindCounter = iota
	countOtherLeaf
)

// snapshot reads the counters. Each counter is individually monotonic; the
// combination may be slightly stale relative to any single worker, which is
// fine for progress display.
func (t *tracker) snapshot() Snapshot {
	snap := Snapshot{
		ScannedFiles: t.files.Load(),
		ScannedDirs:  t.dirs.Load(),
		TotalBytes:   t.bytes.Load(),
	}

	if p := t.current.Load(); p != nil {
		snap.CurrentPath = *p
	}

	return snap
}

// startForwarder invokes hook with a fresh snapshot on each tick until ctx is
// done. The returned stop function cancels the ticker and waits for the
// forwarder to exit, so hook is never called concurrently with itself or
// with the final snapshot delivered by Run.
func (t *tracker) startForwarder(
	ctx context.Context,
	hook func(Snapshot),
	interval time.Duration,
) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(t.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}
