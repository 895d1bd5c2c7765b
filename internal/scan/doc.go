// Package scan builds a size-aggregated filesystem tree.
//
// It walks a directory bottom-up with a bounded number of workers, tolerates
// unreadable entries by recording them on their nodes, and surfaces throttled
// progress snapshots while running.
package scan
