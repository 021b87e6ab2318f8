package calculator

import (
	"context"
	"testing"

	"rfm-segment/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), sampleTable(), models.Config{Scoring: ruleConfig()})
	require.NoError(t, err)

	// moyennes = 2,2,2
	assert.Equal(t, models.Thresholds{Recency: 2, Frequency: 2, Monetary: 2}, res.Thresholds)
	require.Len(t, res.Segmented, 3)
	assert.Equal(t, models.HighValue, res.Segmented[0].Segment)
	assert.Equal(t, models.GeneralWinBack, res.Segmented[1].Segment)
	assert.Equal(t, models.GeneralWinBack, res.Segmented[2].Segment)

	require.Len(t, res.Summary, 2)
	assert.Equal(t, models.GeneralWinBack, res.Summary[0].Segment)
	assert.Equal(t, 2, res.Summary[0].Count)
	assert.Len(t, res.Profiles, 2)
}

func TestRun_ExplicitThresholds(t *testing.T) {
	th := &models.Thresholds{Recency: 1, Frequency: 1, Monetary: 1}
	res, err := Run(context.Background(), sampleTable(), models.Config{Scoring: ruleConfig(), Thresholds: th})
	require.NoError(t, err)
	assert.Equal(t, *th, res.Thresholds)
	assert.Equal(t, models.HighValue, res.Segmented[2].Segment)
}

func TestRun_EmptyTable(t *testing.T) {
	tbl := models.Table{Columns: []string{"role_id", "recency", "frequency", "monetary"}}
	res, err := Run(context.Background(), tbl, models.Config{Scoring: ruleConfig()})
	require.ErrorIs(t, err, models.ErrEmptyInput)
	assert.Nil(t, res)
}

func TestRun_FatalErrorReturnsNothing(t *testing.T) {
	tbl := models.Table{Columns: []string{"role_id", "recency"}}
	res, err := Run(context.Background(), tbl, models.Config{Scoring: ruleConfig()})
	require.ErrorIs(t, err, models.ErrSchema)
	assert.Nil(t, res)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, sampleTable(), models.Config{Scoring: ruleConfig()})
	require.ErrorIs(t, err, context.Canceled)
}
