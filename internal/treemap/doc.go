// Package treemap renders a scanned filesystem tree as a space-filling
// rectangular map.
//
// It prunes entries below a size threshold, partitions the viewport with the
// squarified treemap heuristic, and assigns each file a deterministic color
// keyed on its extension. All of it is pure: nothing here mutates the input
// tree or depends on anything but the arguments.
package treemap
