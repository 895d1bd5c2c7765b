package treemap

import (
	"sort"

	"github.com/idelchi/spacemap/internal/fstree"
)

const (
	// padding is the gap between adjacent sibling rectangles. It is purely
	// visual: every assigned rectangle is inset by half of it per side, so
	// area math is untouched.
	padding = 1.0
	// renderFloor drops rectangles narrower than this in either dimension.
	renderFloor = 2.0
)

// Rect is one file's rectangle within the viewport.
type Rect struct {
	// Path identifies the file the rectangle represents.
	Path string `json:"path"`
	// X, Y, W, H are viewport coordinates.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
	// Value is the file's size in bytes.
	Value int64 `json:"value"`
}

// Layout prunes the tree at threshold and lays the survivors out as a
// squarified treemap filling width x height. Only file leaves produce
// rectangles; directory rectangles are structural. The result depends only
// on the inputs: two calls with the same tree, threshold and viewport are
// identical.
func Layout(root *fstree.Node, threshold int64, width, height float64) []Rect {
	pruned := Prune(root, threshold)
	if pruned == nil || width <= 0 || height <= 0 {
		return nil
	}

	var out []Rect

	place(pruned, frame{x: 0, y: 0, w: width, h: height}, &out)

	return out
}

// frame is a working rectangle during layout.
type frame struct {
	x, y, w, h float64
}

func (f frame) short() float64 {
	return min(f.w, f.h)
}

// place emits a file's rectangle or partitions a directory's frame among its
// children.
func place(n *fstree.Node, f frame, out *[]Rect) {
	if f.w <= 0 || f.h <= 0 {
		return
	}

	if n.Kind == fstree.KindFile {
		if f.w >= renderFloor && f.h >= renderFloor {
			*out = append(*out, Rect{Path: n.Path, X: f.x, Y: f.y, W: f.w, H: f.h, Value: n.Size})
		}

		return
	}

	squarify(n.Children, f, out)
}

// squarify partitions f among children using the squarified treemap
// heuristic: children are taken in descending size order and greedily packed
// into rows along f's short side for as long as adding the next child does
// not worsen the row's worst aspect ratio.
func squarify(children []*fstree.Node, f frame, out *[]Rect) {
	items := make([]*fstree.Node, 0, len(children))

	var total int64

	for _, child := range children {
		if child.Size > 0 {
			items = append(items, child)
			total += child.Size
		}
	}

	if total <= 0 {
		return
	}

	// Stable keeps insertion order on equal sizes, which keeps the whole
	// layout deterministic.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Size > items[j].Size
	})

	scale := f.w * f.h / float64(total)

	areas := make([]float64, len(items))
	for i, item := range items {
		areas[i] = float64(item.Size) * scale
	}

	for start := 0; start < len(items); {
		short := f.short()

		rowSum := areas[start]
		end := start + 1

		for end < len(items) {
			// areas are descending, so the row's extremes are its
			// first and last members.
			current := worst(rowSum, areas[start], areas[end-1], short)
			grown := worst(rowSum+areas[end], areas[start], areas[end], short)

			if grown > current {
				break
			}

			rowSum += areas[end]
			end++
		}

		f = layRow(items[start:end], areas[start:end], rowSum, f, out)
		start = end
	}
}

// worst returns the worst aspect ratio in a row of total area sum whose
// largest and smallest members have areas aMax and aMin, laid along a side
// of the given length.
func worst(sum, aMax, aMin, side float64) float64 {
	return max(side*side*aMax/(sum*sum), sum*sum/(side*side*aMin))
}

// layRow slices a strip for one row off f's short side, assigns each member
// its rectangle, and returns the remaining frame.
func layRow(row []*fstree.Node, areas []float64, sum float64, f frame, out *[]Rect) frame {
	if f.w >= f.h {
		// Vertical strip on the left, members stacked top to bottom.
		strip := sum / f.h
		y := f.y

		for i, n := range row {
			h := areas[i] / strip
			place(n, pad(frame{x: f.x, y: y, w: strip, h: h}), out)
			y += h
		}

		return frame{x: f.x + strip, y: f.y, w: f.w - strip, h: f.h}
	}

	// Horizontal strip on top, members laid left to right.
	strip := sum / f.w
	x := f.x

	for i, n := range row {
		w := areas[i] / strip
		place(n, pad(frame{x: x, y: f.y, w: w, h: strip}), out)
		x += w
	}

	return frame{x: f.x, y: f.y + strip, w: f.w, h: f.h - strip}
}

// pad insets an assigned rectangle so adjacent siblings end up separated by
// the full padding unit.
func pad(f frame) frame {
	half := padding / 2

	if f.w <= padding || f.h <= padding {
		return frame{x: f.x, y: f.y, w: 0, h: 0}
	}

	return frame{x: f.x + half, y: f.y + half, w: f.w - padding, h: f.h - padding}
}
