package vectorize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/common"
)

func TestTransformBeforeFitFails(t *testing.T) {
	v := New(100)
	_, err := v.Transform([]string{"anything"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFitted)
}

func TestFitTwiceFails(t *testing.T) {
	v := New(100)
	require.NoError(t, v.Fit([]string{"cheap phone", "used sofa"}))
	assert.ErrorIs(t, v.Fit([]string{"other corpus"}), common.ErrAlreadyFitted)
}

func TestFitEmptyCorpusFails(t *testing.T) {
	v := New(100)
	assert.ErrorIs(t, v.Fit(nil), common.ErrEmptyBatch)
}

func TestVocabularyBoundAndOrder(t *testing.T) {
	corpus := []string{
		"cheap phone cheap phone",
		"cheap phone deal",
		"sofa deal",
	}
	v := New(3)
	require.NoError(t, v.Fit(corpus))

	vocab := v.Vocabulary()
	require.Len(t, vocab, 3)
	// "cheap", "phone" and "cheap phone" have the highest corpus counts;
	// column order is alphabetical over the selection.
	assert.Equal(t, []string{"cheap", "cheap phone", "phone"}, vocab)
}

func TestTransformIdempotent(t *testing.T) {
	corpus := []string{
		"URGENT cheap iphone, call now",
		"well maintained corolla, service history",
		"sofa set barely used",
	}
	v := New(0)
	require.NoError(t, v.Fit(corpus))

	batch := []string{"cheap iphone with service history", "unknown words only zzz"}
	first, err := v.Transform(batch)
	require.NoError(t, err)
	second, err := v.Transform(batch)
	require.NoError(t, err)
	assert.Equal(t, first, second, "transform must be byte-identical across calls")
}

func TestTransformRows(t *testing.T) {
	corpus := []string{"cheap phone", "nice sofa", "cheap sofa"}
	v := New(0)
	require.NoError(t, v.Fit(corpus))

	rows, err := v.Transform([]string{"cheap phone", "completely unseen"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Known terms produce an L2-normalized row.
	var norm float64
	for _, x := range rows[0].Values {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	// Out-of-vocabulary text produces an all-zero row, not an error.
	assert.Empty(t, rows[1].Indices)
	assert.Equal(t, v.Dims(), rows[1].Dims)
}

func TestStateRoundTrip(t *testing.T) {
	corpus := []string{"cheap phone deal", "used sofa deal"}
	v := New(50)
	require.NoError(t, v.Fit(corpus))

	restored, err := FromState(v.State())
	require.NoError(t, err)
	assert.True(t, restored.Fitted())

	batch := []string{"cheap deal on a sofa"}
	want, err := v.Transform(batch)
	require.NoError(t, err)
	got, err := restored.Transform(batch)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFromStateRejectsCorruptState(t *testing.T) {
	_, err := FromState(State{Terms: []string{"a b"}, IDF: nil})
	assert.ErrorIs(t, err, common.ErrArtifactCorrupt)
}
