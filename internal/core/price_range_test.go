package core

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceRangesAreContiguous(t *testing.T) {
	assert.Equal(t, 0.0, PriceRanges[0].Min)
	for i := 1; i < len(PriceRanges); i++ {
		assert.Equal(t, PriceRanges[i-1].Max, PriceRanges[i].Min, PriceRanges[i].Label)
		assert.Greater(t, PriceRanges[i].Max, PriceRanges[i].Min, PriceRanges[i].Label)
	}
	assert.Equal(t, 900.0, PriceRanges[len(PriceRanges)-1].Max)
}

func TestPriceRangeLabelsSortLexicographically(t *testing.T) {
	var labels []string
	for _, r := range PriceRanges {
		labels = append(labels, r.Label)
	}
	labels = append(labels, OverflowLabel)
	assert.Len(t, labels, 10)
	assert.True(t, sort.StringsAreSorted(labels), "labels: %v", labels)
	assert.Equal(t, OverflowLabel, labels[len(labels)-1])
}
