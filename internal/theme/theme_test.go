package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct, width, filled, empty int
	}{
		{pct: 0, width: 10, filled: 0, empty: 10},
		{pct: 60, width: 10, filled: 6, empty: 4},
		{pct: 100, width: 10, filled: 10, empty: 0},
		{pct: 150, width: 4, filled: 4, empty: 0},
		{pct: -5, width: 4, filled: 0, empty: 4},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.pct, tt.width)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "pct %d", tt.pct)
		assert.Equal(t, tt.empty, strings.Count(bar, "░"), "pct %d", tt.pct)
	}
	assert.Empty(t, ProgressBar(50, 0))
}
