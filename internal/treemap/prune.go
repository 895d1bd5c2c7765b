package treemap

import (
	"github.com/idelchi/spacemap/internal/fstree"
)

// Prune returns a fresh tree holding only the entries worth rendering at the
// given threshold; the input tree is never touched.
//
// A file survives iff its size is at least threshold bytes. A directory
// survives iff at least one of its children survives, and its size is
// recomputed as the sum of its surviving children's sizes. Symlink and other
// leaves never survive: only files produce rectangles, and excluding them
// here keeps a directory's displayed weight equal to the area actually
// rendered inside it.
//
// Prune is idempotent: pruning an already-pruned tree at the same threshold
// returns an equal tree.
func Prune(n *fstree.Node, threshold int64) *fstree.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case fstree.KindFile:
		if n.Size < threshold {
			return nil
		}

		return &fstree.Node{
			Name:      n.Name,
			Path:      n.Path,
			Kind:      n.Kind,
			Size:      n.Size,
			Extension: n.Extension,
			Error:     n.Error,
		}
	case fstree.KindDirectory:
		var (
			children []*fstree.Node
			total    int64
		)

		for _, child := range n.Children {
			pruned := Prune(child, threshold)
			if pruned == nil {
				continue
			}

			children = append(children, pruned)
			total += pruned.Size
		}

		if len(children) == 0 {
			return nil
		}

		return &fstree.Node{
			Name:     n.Name,
			Path:     n.Path,
			Kind:     n.Kind,
			Size:     total,
			Children: children,
		}
	default:
		return nil
	}
}
