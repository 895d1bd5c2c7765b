package treemap

import (
	"hash/fnv"
	"strings"
)

// noExtension is the color key for files without an extension.
const noExtension = "none"

// Palette is the fixed set of treemap colors. Indexing is stable: the same
// extension maps to the same entry on every call and in every process.
var Palette = [...]string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
	"#86bcb6",
	"#d37295",
}

// ColorIndex maps a file extension to a palette index.
func ColorIndex(ext string) int {
	key := strings.ToLower(ext)
	if key == "" {
		key = noExtension
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return int(h.Sum32() % uint32(len(Palette)))
}

// Color maps a file extension to its palette color.
func Color(ext string) string {
	return Palette[ColorIndex(ext)]
}
