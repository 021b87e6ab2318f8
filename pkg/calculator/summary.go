package calculator

import (
	"fmt"
	"sort"

	"rfm-segment/pkg/models"
)

// Summarize compte les lignes par segment, trié par effectif décroissant puis
// par libellé.
func Summarize(rows []models.SegmentedRow) ([]models.SummaryEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to summarize", models.ErrEmptyInput)
	}
	counts := map[models.Segment]int{}
	for _, r := range rows {
		counts[r.Segment]++
	}
	total := float64(len(rows))
	out := make([]models.SummaryEntry, 0, len(counts))
	for seg, c := range counts {
		out = append(out, models.SummaryEntry{Segment: seg, Count: c, Percentage: 100 * float64(c) / total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment < out[j].Segment
	})
	return out, nil
}

// Describe calcule, pour chaque segment présent, la moyenne des scores.
func Describe(rows []models.SegmentedRow) ([]models.SegmentProfile, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to describe", models.ErrEmptyInput)
	}
	type acc struct{ n, r, f, m, rfm int }
	sums := map[models.Segment]*acc{}
	for _, row := range rows {
		a, ok := sums[row.Segment]
		if !ok {
			a = &acc{}
			sums[row.Segment] = a
		}
		a.n++
		a.r += row.RScore
		a.f += row.FScore
		a.m += row.MScore
		a.rfm += row.RFMScore
	}
	var out []models.SegmentProfile
	for _, seg := range models.Segments {
		a, ok := sums[seg]
		if !ok {
			continue
		}
		n := float64(a.n)
		out = append(out, models.SegmentProfile{
			Segment: seg,
			Count:   a.n,
			RMean:   float64(a.r) / n,
			FMean:   float64(a.f) / n,
			MMean:   float64(a.m) / n,
			RFMMean: float64(a.rfm) / n,
		})
	}
	return out, nil
}
