package calculator

import (
	"fmt"

	"rfm-segment/pkg/models"
)

// Classify place une ligne dans l'un des huit segments. Chaque dimension est
// « haute » si son score est strictement supérieur à la référence.
func Classify(row models.ScoredRow, th models.Thresholds) models.Segment {
	highF := float64(row.FScore) > th.Frequency
	highM := float64(row.MScore) > th.Monetary

	if float64(row.RScore) > th.Recency {
		switch {
		case highF && highM:
			return models.HighValue
		case highF:
			return models.FocusDevelop
		case highM:
			return models.FocusRetainValue
		default:
			return models.FocusWinBack
		}
	}
	switch {
	case highF && highM:
		return models.GeneralValue
	case highF:
		return models.GeneralDevelop
	case highM:
		return models.GeneralRetain
	default:
		return models.GeneralWinBack
	}
}

// MeanThresholds calcule la moyenne de R_Score, F_Score et M_Score.
func MeanThresholds(rows []models.ScoredRow) (models.Thresholds, error) {
	if len(rows) == 0 {
		return models.Thresholds{}, fmt.Errorf("%w: no rows to compute score means", models.ErrEmptyInput)
	}
	var r, f, m int
	for _, row := range rows {
		r += row.RScore
		f += row.FScore
		m += row.MScore
	}
	n := float64(len(rows))
	return models.Thresholds{Recency: float64(r) / n, Frequency: float64(f) / n, Monetary: float64(m) / n}, nil
}

// ResolveThresholds renvoie explicit s'il est fourni, sinon les moyennes.
func ResolveThresholds(rows []models.ScoredRow, explicit *models.Thresholds) (models.Thresholds, error) {
	if explicit != nil {
		return *explicit, nil
	}
	return MeanThresholds(rows)
}

// SegmentRows classe chaque ligne avec les mêmes références.
func SegmentRows(rows []models.ScoredRow, th models.Thresholds) []models.SegmentedRow {
	out := make([]models.SegmentedRow, len(rows))
	for i, row := range rows {
		out[i] = models.SegmentedRow{ScoredRow: row, Segment: Classify(row, th)}
	}
	return out
}
