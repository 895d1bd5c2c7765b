package fstree

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Kind classifies a filesystem entry.
type Kind uint8

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
	// KindSymlink is a symbolic link. Symlinks are always leaves; the
	// scanner never follows them.
	KindSymlink
	// KindOther covers sockets, devices, pipes and entries that could not
	// be classified.
	KindOther
)

// String returns the lowercase name used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// MarshalJSON encodes the kind as its lowercase string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a lowercase kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "file":
		*k = KindFile
	case "directory":
		*k = KindDirectory
	case "symlink":
		*k = KindSymlink
	case "other":
		*k = KindOther
	default:
		return fmt.Errorf("unknown entry kind %q", s)
	}

	return nil
}

// KindFromMode derives the Kind from a file mode.
func KindFromMode(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Node is one filesystem entry with its aggregated size. A directory's size
// is the sum of its children's sizes; directories carry no size of their own.
//
// A tree is built once by a scan and is read-only afterwards. Layout and
// navigation only ever reference into it.
type Node struct {
	// Name is the final path component.
	Name string `json:"name"`
	// Path is the absolute, platform-native path.
	Path string `json:"path"`
	// Kind classifies the entry.
	Kind Kind `json:"kind"`
	// Size is the entry's byte count; 0 when Error is set.
	Size int64 `json:"size"`
	// Children holds a directory's entries in directory-listing order.
	Children []*Node `json:"children,omitempty"`
	// Extension is the lowercase file extension without the dot.
	Extension string `json:"extension,omitempty"`
	// Error records why this entry could not be fully read.
	Error string `json:"error,omitempty"`
}

// ExtensionOf returns the lowercase extension of name without the leading
// dot, or "" when there is none.
func ExtensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Walk visits n and every node below it in depth-first order. It stops early
// when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}

	if !fn(n) {
		return false
	}

	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}

	return true
}
