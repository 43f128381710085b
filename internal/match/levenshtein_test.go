package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"derive", "derive", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},  // substitution
		{"a", "ab", 1}, // insertion
		{"ab", "a", 1}, // deletion

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"Derive", "derive", 1},

		// Directive typos
		{"//dupgen:derve", "//dupgen:derive", 1},
		{"//dupgen:drive", "//dupgen:derive", 1},
		{"//dupgen:dervie", "//dupgen:derive", 2},
		{"//dupgen:derives", "//dupgen:derive", 1},
		{"//dupegn:derive", "//dupgen:derive", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			// Symmetric
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestNear(t *testing.T) {
	const want = "//dupgen:derive"

	assert.True(t, Near("//dupgen:derve", want, 2))
	assert.True(t, Near("//dupgen:dervie", want, 2))
	assert.False(t, Near(want, want, 2))
	assert.False(t, Near("//dupgen:generate", want, 2))
	assert.False(t, Near("//go:generate", want, 2))
	assert.False(t, Near("//nolint", want, 2))
}
