package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[float64]float64{
		70: 59,
		30: 30,
		47: 34,
		45: 32,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []float64{30, 45, 47, 70}, result)
}

func TestSortedKeysEmpty(t *testing.T) {
	// WHEN
	result := SortedKeys(map[int]int{})

	// THEN
	assert.Empty(t, result)
}
