package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToMultiple(t *testing.T) {
	// Rounds half up to the nearest multiple
	assert.Equal(t, 3, RoundToMultiple(4, 3))
	assert.Equal(t, 6, RoundToMultiple(5, 3))
	assert.Equal(t, 6, RoundToMultiple(6, 3))
	assert.Equal(t, 12, RoundToMultiple(10, 12))

	// Never below one multiple
	assert.Equal(t, 3, RoundToMultiple(1, 3))
	assert.Equal(t, 3, RoundToMultiple(0, 3))
	assert.Equal(t, 5, RoundToMultiple(-7, 5))

	// Degenerate multiples behave as 1
	assert.Equal(t, 7, RoundToMultiple(7, 1))
	assert.Equal(t, 7, RoundToMultiple(7, 0))
	assert.Equal(t, 7, RoundToMultiple(7, -2))
	assert.Equal(t, 1, RoundToMultiple(0, 0))
}

func TestRoundToMultipleProperties(t *testing.T) {
	for m := 1; m <= 12; m++ {
		for q := -3; q <= 40; q++ {
			got := RoundToMultiple(q, m)
			assert.Zerof(t, got%m, "Round(%d,%d)=%d not a multiple", q, m, got)
			assert.GreaterOrEqualf(t, got, m, "Round(%d,%d)=%d below one multiple", q, m, got)
		}
	}
}
