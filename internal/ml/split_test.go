package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/common"
)

func TestStratifiedSplitPreservesRatio(t *testing.T) {
	labels := make([]int, 100)
	for i := 0; i < 30; i++ {
		labels[i] = 1
	}

	train, test, err := StratifiedSplit(labels, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, train, 80)
	assert.Len(t, test, 20)

	countPos := func(idx []int) int {
		n := 0
		for _, i := range idx {
			if labels[i] == 1 {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 24, countPos(train))
	assert.Equal(t, 6, countPos(test))

	// No index appears twice.
	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i], "index %d assigned twice", i)
		seen[i] = true
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	labels := []int{0, 0, 0, 0, 0, 1, 1, 1, 0, 1}

	train1, test1, err := StratifiedSplit(labels, 0.2, 9)
	require.NoError(t, err)
	train2, test2, err := StratifiedSplit(labels, 0.2, 9)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestStratifiedSplitImbalance(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
	}{
		{name: "single positive", labels: []int{0, 0, 0, 0, 1}},
		{name: "no positives", labels: []int{0, 0, 0, 0}},
		{name: "single negative", labels: []int{1, 1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := StratifiedSplit(tt.labels, 0.2, 1)
			assert.ErrorIs(t, err, common.ErrLabelImbalance)
		})
	}
}

func TestStratifiedSplitBadFraction(t *testing.T) {
	_, _, err := StratifiedSplit([]int{0, 0, 1, 1}, 0, 1)
	assert.Error(t, err)
	_, _, err = StratifiedSplit([]int{0, 0, 1, 1}, 1, 1)
	assert.Error(t, err)
}
