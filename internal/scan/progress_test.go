package scan_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/spacemap/internal/fstree"
	"github.com/idelchi/spacemap/internal/scan"
)

func TestProgressSnapshots(t *testing.T) {
	tmp := t.TempDir()

	for _, dir := range []string{"images", "docs", "src"} {
		for i, name := range []string{"one", "two", "three"} {
			writeFile(t, filepath.Join(tmp, dir, name), 100*(i+1))
		}
	}

	var snapshots []scan.Snapshot

	root, err := scan.Run(context.Background(), tmp, scan.Options{
		ProgressInterval: time.Millisecond,
		OnProgress: func(snap scan.Snapshot) {
			snapshots = append(snapshots, snap)
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, snapshots, "at least the final snapshot must be delivered")

	// Counters never move backwards within one scan.
	for i := 1; i < len(snapshots); i++ {
		assert.GreaterOrEqual(t, snapshots[i].ScannedFiles, snapshots[i-1].ScannedFiles)
		assert.GreaterOrEqual(t, snapshots[i].ScannedDirs, snapshots[i-1].ScannedDirs)
		assert.GreaterOrEqual(t, snapshots[i].TotalBytes, snapshots[i-1].TotalBytes)
	}

	var files, dirs uint64

	root.Walk(func(n *fstree.Node) bool {
		switch n.Kind {
		case fstree.KindFile:
			files++
		case fstree.KindDirectory:
			dirs++
		}

		return true
	})

	// The final snapshot equals the finished tree's totals.
	final := snapshots[len(snapshots)-1]
	assert.Equal(t, files, final.ScannedFiles)
	assert.Equal(t, dirs, final.ScannedDirs)
	assert.Equal(t, uint64(root.Size), final.TotalBytes)
	assert.Equal(t, root.Path, final.CurrentPath)
}

func TestProgressNilHook(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a"), 10)

	root, err := scan.Run(context.Background(), tmp, scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), root.Size)
}
