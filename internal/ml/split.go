package ml

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/souqrisk/souqrisk/internal/common"
)

// StratifiedSplit partitions row indices into train and test sets while
// preserving the class ratio in both. It fails rather than silently falling
// back to a plain split when either class has fewer than two examples.
func StratifiedSplit(labels []int, testFraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v outside (0,1)", testFraction)
	}

	byClass := make(map[int][]int)
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}
	for class, idx := range byClass {
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("%w: class %d has only %d example(s)",
				common.ErrLabelImbalance, class, len(idx))
		}
	}
	if len(byClass) < 2 {
		return nil, nil, fmt.Errorf("%w: all labels belong to one class", common.ErrLabelImbalance)
	}

	rng := rand.New(rand.NewSource(seed))

	// Deterministic class order so the same seed yields the same split.
	for _, class := range []int{0, 1} {
		idx, ok := byClass[class]
		if !ok {
			continue
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(float64(len(idx)) * testFraction))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(idx) {
			nTest = len(idx) - 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	return trainIdx, testIdx, nil
}
