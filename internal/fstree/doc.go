// Package fstree defines the immutable tree model produced by scanning a
// directory and consumed by treemap layout.
package fstree
