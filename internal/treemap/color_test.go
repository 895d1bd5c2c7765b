package treemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idelchi/spacemap/internal/treemap"
)

func TestColorIndexStable(t *testing.T) {
	for _, ext := range []string{"go", "mp4", "tar", "JPG", ""} {
		first := treemap.ColorIndex(ext)
		second := treemap.ColorIndex(ext)

		assert.Equal(t, first, second, "%q", ext)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, len(treemap.Palette))
		assert.Equal(t, treemap.Palette[first], treemap.Color(ext))
	}
}

func TestColorIndexCaseInsensitive(t *testing.T) {
	assert.Equal(t, treemap.ColorIndex("mp4"), treemap.ColorIndex("MP4"))
}

func TestColorNoExtensionSentinel(t *testing.T) {
	// Files without an extension share one fixed key rather than hashing
	// the empty string.
	assert.Equal(t, treemap.ColorIndex(""), treemap.ColorIndex("none"))
}
