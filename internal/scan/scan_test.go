package scan_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	set "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/spacemap/internal/fstree"
	"github.com/idelchi/spacemap/internal/scan"
)

// writeFile creates path with the given number of bytes, creating parent
// directories as needed.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
}

// child returns the child of n with the given name.
func child(t *testing.T, n *fstree.Node, name string) *fstree.Node {
	t.Helper()

	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	t.Fatalf("no child named %q under %q", name, n.Path)

	return nil
}

func TestRunAggregatesSizes(t *testing.T) {
	tmp := t.TempDir()

	writeFile(t, filepath.Join(tmp, "a.txt"), 100)
	writeFile(t, filepath.Join(tmp, "sub", "b.bin"), 200)
	writeFile(t, filepath.Join(tmp, "sub", "deep", "c"), 300)
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "empty"), 0o755))

	root, err := scan.Run(context.Background(), tmp, scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, fstree.KindDirectory, root.Kind)
	assert.Equal(t, int64(600), root.Size)
	assert.Len(t, root.Children, 3)

	// Every directory's size is the sum of its children, and every path is
	// its parent's path joined with its name.
	root.Walk(func(n *fstree.Node) bool {
		if n.Kind == fstree.KindDirectory {
			var sum int64
			for _, c := range n.Children {
				sum += c.Size
				assert.Equal(t, filepath.Join(n.Path, c.Name), c.Path)
			}

			assert.Equal(t, sum, n.Size)
		}

		return true
	})

	a := child(t, root, "a.txt")
	assert.Equal(t, fstree.KindFile, a.Kind)
	assert.Equal(t, int64(100), a.Size)
	assert.Equal(t, "txt", a.Extension)

	sub := child(t, root, "sub")
	assert.Equal(t, int64(500), sub.Size)
	assert.Equal(t, int64(300), child(t, child(t, sub, "deep"), "c").Size)

	empty := child(t, root, "empty")
	assert.Equal(t, int64(0), empty.Size)
	assert.NotNil(t, empty.Children)
	assert.Empty(t, empty.Children)
}

func TestRunRootNotFound(t *testing.T) {
	_, err := scan.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), scan.Options{})
	require.Error(t, err)

	var scanErr *scan.Error

	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, scan.CodeNotFound, scanErr.Code)
}

func TestRunRootNotADirectory(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain.txt")
	writeFile(t, file, 1)

	_, err := scan.Run(context.Background(), file, scan.Options{})
	require.Error(t, err)

	var scanErr *scan.Error

	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, scan.CodeNotADirectory, scanErr.Code)
}

func TestRunSymlinksAreLeaves(t *testing.T) {
	tmp := t.TempDir()

	writeFile(t, filepath.Join(tmp, "target", "payload.bin"), 4096)

	link := filepath.Join(tmp, "link")
	if err := os.Symlink(filepath.Join(tmp, "target"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	root, err := scan.Run(context.Background(), tmp, scan.Options{})
	require.NoError(t, err)

	node := child(t, root, "link")
	assert.Equal(t, fstree.KindSymlink, node.Kind)
	assert.Empty(t, node.Children, "symlinks must never be traversed")
	assert.Empty(t, node.Error)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), node.Size, "symlinks report the link's own size")

	assert.Equal(t, int64(4096)+info.Size(), root.Size)
}

func TestRunUnreadableEntry(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permissions are not enforced")
	}

	tmp := t.TempDir()

	writeFile(t, filepath.Join(tmp, "readable.txt"), 50)
	writeFile(t, filepath.Join(tmp, "locked", "hidden.bin"), 9000)

	locked := filepath.Join(tmp, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	root, err := scan.Run(context.Background(), tmp, scan.Options{})
	require.NoError(t, err, "entry failures must not abort the scan")

	node := child(t, root, "locked")
	assert.NotEmpty(t, node.Error)
	assert.Equal(t, int64(0), node.Size)
	assert.Equal(t, int64(50), root.Size, "failed entries contribute nothing to ancestor sums")
}

func TestRunExclude(t *testing.T) {
	tmp := t.TempDir()

	writeFile(t, filepath.Join(tmp, "kept.txt"), 10)
	writeFile(t, filepath.Join(tmp, ".git", "objects", "blob"), 5000)
	writeFile(t, filepath.Join(tmp, "node_modules", "pkg", "index.js"), 7000)

	root, err := scan.Run(context.Background(), tmp, scan.Options{
		Exclude: set.NewSet(".git", "node_modules"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), root.Size)
	assert.Len(t, root.Children, 1)
	assert.Equal(t, "kept.txt", root.Children[0].Name)
}

func TestRunCancelled(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "sub", "a"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scan.Run(ctx, tmp, scan.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunBoundedWorkers(t *testing.T) {
	tmp := t.TempDir()

	for _, dir := range []string{"a", "b", "c", "d"} {
		for _, name := range []string{"1", "2", "3"} {
			writeFile(t, filepath.Join(tmp, dir, "nested", name), 10)
		}
	}

	root, err := scan.Run(context.Background(), tmp, scan.Options{Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(120), root.Size)

	wide, err := scan.Run(context.Background(), tmp, scan.Options{Workers: 16})
	require.NoError(t, err)
	assert.Equal(t, root, wide, "worker count must not change the result")
}
