// Package summary produces flat statistics for a directory tree: totals,
// per-extension aggregates and the largest files. It walks in parallel with
// fastwalk and never builds a tree, making it the quick companion to the
// full scanner.
package summary
