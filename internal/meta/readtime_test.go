package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimateReadMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty", raw: "", want: 1},
		{name: "whitespace only", raw: " \n\t ", want: 1},
		{name: "one word", raw: "hello", want: 1},
		{name: "exactly one minute", raw: words(200), want: 1},
		{name: "just over a minute", raw: words(201), want: 2},
		{name: "exactly 400 words", raw: words(400), want: 2},
		{name: "markdown counts tokens", raw: "# Title\n\nSome *body* text.\n", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadMinutes(tt.raw))
		})
	}
}

func TestReadMinutes_CustomSpeed(t *testing.T) {
	assert.Equal(t, 4, ReadMinutes(words(400), 100))
	assert.Equal(t, 2, ReadMinutes(words(400), 0), "non-positive speed uses the default")
	assert.Equal(t, 1, ReadMinutes("", 50))
}
