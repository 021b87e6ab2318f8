package scoring

import (
	"math"
	"testing"

	"rfm-segment/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBins(bins []int) map[int]int {
	counts := map[int]int{}
	for _, b := range bins {
		counts[b]++
	}
	return counts
}

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestQuartiles_EqualBins(t *testing.T) {
	bins, err := Quartiles(seq(100))
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 25, 2: 25, 3: 25, 4: 25}, countBins(bins))
	assert.Equal(t, 1, bins[0])
	assert.Equal(t, 4, bins[99])
}

func TestQuartiles_NonMultipleOfFour(t *testing.T) {
	for _, n := range []int{5, 6, 7, 101, 103} {
		bins, err := Quartiles(seq(n))
		require.NoError(t, err)
		for label, c := range countBins(bins) {
			assert.GreaterOrEqual(t, c, n/4, "n=%d bin=%d", n, label)
			assert.LessOrEqual(t, c, (n+3)/4, "n=%d bin=%d", n, label)
		}
	}
}

func TestQuartiles_TooFewValues(t *testing.T) {
	_, err := Quartiles([]float64{1, 2, 3})
	require.ErrorIs(t, err, models.ErrInsufficientData)

	_, err = Quartiles([]float64{1, 1, 1, 1, 2})
	require.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestNormalize(t *testing.T) {
	r, err := Normalize(models.Recency, []float64{0, 5, 10, 20})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.75, 0.5, 0}, r, 1e-12)

	f, err := Normalize(models.Frequency, []float64{0, 1, 3, 7})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f[0], 1e-12)
	assert.InDelta(t, 1.0, f[3], 1e-12)
	assert.InDelta(t, 2.0/3.0, f[2], 1e-12) // log(4)/log(8)
}

func TestNormalize_InsufficientData(t *testing.T) {
	_, err := Normalize(models.Monetary, []float64{3, 3, 3, 3, 3})
	require.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestScoreColumns(t *testing.T) {
	q := NewQuantileScorer(models.QuantileOptions{Seed: 42})
	n := 100
	recency := seq(n)
	frequency := seq(n)
	monetary := seq(n)

	r, f, m, err := q.ScoreColumns(recency, frequency, monetary)
	require.NoError(t, err)
	for _, bins := range [][]int{r, f, m} {
		assert.Equal(t, map[int]int{1: 25, 2: 25, 3: 25, 4: 25}, countBins(bins))
	}
	// recency inversée : la plus petite valeur brute obtient le meilleur score
	assert.Equal(t, 4, r[0])
	assert.Equal(t, 1, r[n-1])
	assert.Equal(t, 1, f[0])
	assert.Equal(t, 4, m[n-1])
	// entrée non modifiée
	assert.Equal(t, seq(n), recency)
}

func TestScoreColumns_DuplicateRowsResolved(t *testing.T) {
	q := NewQuantileScorer(models.QuantileOptions{Seed: 7, MaxRetries: 3})
	col := []float64{1, 2, 3, 4, 4, 5, 6, 7}
	_, _, _, err := q.ScoreColumns(col, col, col)
	require.NoError(t, err)
}

func TestScoreColumns_ConvergenceError(t *testing.T) {
	q := NewQuantileScorer(models.QuantileOptions{MaxRetries: 3})
	calls := 0
	q.noise = func() float64 { calls++; return 0 }

	col := []float64{1, 2, 3, 4, 4, 5}
	_, _, _, err := q.ScoreColumns(col, col, col)
	require.ErrorIs(t, err, models.ErrConvergence)
	// perturbation initiale + 3 tentatives, sur 3 colonnes de 6 valeurs
	assert.Equal(t, 4*3*len(col), calls)
}

func TestScoreColumns_LengthMismatch(t *testing.T) {
	q := NewQuantileScorer(models.QuantileOptions{Seed: 1})
	_, _, _, err := q.ScoreColumns(seq(4), seq(5), seq(4))
	require.ErrorIs(t, err, models.ErrSchema)
}

func TestScoreColumns_MissingCellScoresZero(t *testing.T) {
	recency := append(seq(8), math.NaN())
	other := seq(9)

	r, f, _, err := NewQuantileScorer(models.QuantileOptions{Seed: 5}).ScoreColumns(recency, other, other)
	require.NoError(t, err)
	assert.Equal(t, 0, r[8])
	assert.Equal(t, map[int]int{1: 2, 2: 2, 3: 2, 4: 2}, countBins(r[:8]))
	assert.Equal(t, 4, r[0])
	assert.Equal(t, 1, r[7])
	assert.Equal(t, 4, f[8])
}

func TestNormalize_IgnoresMissing(t *testing.T) {
	r, err := Normalize(models.Recency, []float64{0, math.NaN(), 5, 10, 20})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r[0], 1e-12)
	assert.True(t, math.IsNaN(r[1]))
	assert.InDelta(t, 0.0, r[4], 1e-12)

	_, err = Normalize(models.Monetary, []float64{1, 2, 3, math.NaN(), math.NaN()})
	require.ErrorIs(t, err, models.ErrInsufficientData)
}
