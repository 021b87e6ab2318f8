package calculator

import (
	"testing"

	"rfm-segment/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmented(segs ...models.Segment) []models.SegmentedRow {
	out := make([]models.SegmentedRow, len(segs))
	for i, s := range segs {
		out[i] = models.SegmentedRow{ScoredRow: models.NewScoredRow("x", i, 1, 2), Segment: s}
	}
	return out
}

func TestSummarize(t *testing.T) {
	rows := segmented(
		models.GeneralWinBack, models.HighValue, models.GeneralWinBack,
		models.FocusDevelop, models.HighValue, models.GeneralWinBack,
	)
	got, err := Summarize(rows)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, models.GeneralWinBack, got[0].Segment)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 50.0, got[0].Percentage, 1e-9)
	assert.Equal(t, models.HighValue, got[1].Segment)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, models.FocusDevelop, got[2].Segment)
	assert.Equal(t, 1, got[2].Count)

	total, pct := 0, 0.0
	for _, e := range got {
		total += e.Count
		pct += e.Percentage
	}
	assert.Equal(t, len(rows), total)
	assert.InDelta(t, 100.0, pct, 0.01)
}

func TestSummarize_TieBreakByLabel(t *testing.T) {
	got, err := Summarize(segmented(models.GeneralValue, models.FocusWinBack, models.HighValue))
	require.NoError(t, err)
	assert.Equal(t, []models.Segment{models.FocusWinBack, models.GeneralValue, models.HighValue},
		[]models.Segment{got[0].Segment, got[1].Segment, got[2].Segment})
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	require.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestDescribe(t *testing.T) {
	rows := []models.SegmentedRow{
		{ScoredRow: models.NewScoredRow("a", 4, 4, 4), Segment: models.HighValue},
		{ScoredRow: models.NewScoredRow("b", 2, 4, 3), Segment: models.HighValue},
		{ScoredRow: models.NewScoredRow("c", 1, 1, 1), Segment: models.GeneralWinBack},
	}
	got, err := Describe(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.HighValue, got[0].Segment)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 3.0, got[0].RMean, 1e-12)
	assert.InDelta(t, 10.5, got[0].RFMMean, 1e-12)
	assert.Equal(t, models.GeneralWinBack, got[1].Segment)

	_, err = Describe(nil)
	require.ErrorIs(t, err, models.ErrEmptyInput)
}
