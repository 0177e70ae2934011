package notebooklm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToRuneBoundary(t *testing.T) {
	s := "abé" // 4 bytes, the é spans bytes 2-3

	assert.Equal(t, s, truncateToRuneBoundary(s, 10))
	assert.Equal(t, s, truncateToRuneBoundary(s, 4))
	assert.Equal(t, "ab", truncateToRuneBoundary(s, 3), "cut lands inside the rune")
	assert.Equal(t, "ab", truncateToRuneBoundary(s, 2))
	assert.Equal(t, "", truncateToRuneBoundary(s, 0))

	wide := strings.Repeat("界", 100) // 3 bytes each
	for _, limit := range []int{50, 149, 150, 299} {
		got := truncateToRuneBoundary(wide, limit)
		assert.True(t, utf8.ValidString(got), "limit %d must not split a rune", limit)
		assert.LessOrEqual(t, len(got), limit)
	}
}
