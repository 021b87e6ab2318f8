package calculator

import (
	"fmt"
	"math"
	"strings"

	"rfm-segment/pkg/models"
	"rfm-segment/pkg/scoring"
)

// DefaultIDColumn est la colonne identifiant attendue par défaut.
const DefaultIDColumn = "role_id"

// ScoreResult est la table notée et les cellules non numériques rencontrées.
type ScoreResult struct {
	Rows     []models.ScoredRow
	Warnings []models.CoercionWarning
}

// SelectRecords extrait les colonnes id, recency, frequency et monetary.
// Une colonne absente est une ErrSchema.
func SelectRecords(t models.Table, idColumn string) ([]models.Record, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}
	wanted := []string{idColumn, models.Recency.Column(), models.Frequency.Column(), models.Monetary.Column()}

	pos := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		c = strings.TrimSpace(c)
		if _, dup := pos[c]; !dup {
			pos[c] = i
		}
	}
	idx := make([]int, len(wanted))
	var missing []string
	for i, c := range wanted {
		p, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", models.ErrSchema, strings.Join(missing, ", "))
	}

	records := make([]models.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		// cellules finales absentes (XLSX) = vides
		var vals [4]string
		for i, p := range idx {
			if p < len(row) {
				vals[i] = row[p]
			}
		}
		records = append(records, models.Record{ID: vals[0], Recency: vals[1], Frequency: vals[2], Monetary: vals[3]})
	}
	return records, nil
}

// ValidateScoring vérifie qu'une stratégie est choisie et, pour la notation
// par règles, que R, F et M ont chacun un RuleSet non vide.
func ValidateScoring(cfg models.ScoringConfig) error {
	switch cfg.Strategy {
	case models.StrategyRule:
		var missing []string
		for _, d := range models.Dimensions {
			if rs, ok := cfg.Rules[d]; !ok || rs.Len() == 0 {
				missing = append(missing, string(d))
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing scoring rules for %s", models.ErrConfiguration, strings.Join(missing, ", "))
		}
	case models.StrategyQuantile:
		if len(cfg.Rules) > 0 {
			return fmt.Errorf("%w: the quantile strategy does not take rules", models.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown strategy %q", models.ErrConfiguration, cfg.Strategy)
	}
	return nil
}

// ComputeScores note la table avec la stratégie configurée. La table d'entrée
// n'est jamais modifiée ; aucune ligne n'est renvoyée en cas d'erreur fatale.
func ComputeScores(t models.Table, cfg models.ScoringConfig) (ScoreResult, error) {
	if err := ValidateScoring(cfg); err != nil {
		return ScoreResult{}, err
	}
	records, err := SelectRecords(t, cfg.IDColumn)
	if err != nil {
		return ScoreResult{}, err
	}
	if cfg.Strategy == models.StrategyQuantile {
		return scoreQuantile(records, cfg.Quantile)
	}
	return scoreRules(records, cfg.Rules), nil
}

func scoreRules(records []models.Record, rules map[models.Dimension]models.RuleSet) ScoreResult {
	res := ScoreResult{Rows: make([]models.ScoredRow, 0, len(records))}
	for n, rec := range records {
		var s [3]int
		for i, d := range models.Dimensions {
			v, err := scoring.ScoreValue(rec.Value(d), rules[d], d == models.Recency)
			if err != nil {
				res.Warnings = append(res.Warnings, models.CoercionWarning{Row: n, ID: rec.ID, Dimension: d, Raw: rec.Value(d)})
			}
			s[i] = v
		}
		res.Rows = append(res.Rows, models.NewScoredRow(rec.ID, s[0], s[1], s[2]))
	}
	return res
}

func scoreQuantile(records []models.Record, opts models.QuantileOptions) (ScoreResult, error) {
	var res ScoreResult
	cols := make([][]float64, len(models.Dimensions))
	for i := range cols {
		cols[i] = make([]float64, len(records))
	}
	for n, rec := range records {
		for i, d := range models.Dimensions {
			v, err := scoring.ParseNumber(rec.Value(d))
			if err != nil {
				// absent : exclu des quartiles, noté 0
				v = math.NaN()
				res.Warnings = append(res.Warnings, models.CoercionWarning{Row: n, ID: rec.ID, Dimension: d, Raw: rec.Value(d)})
			}
			cols[i][n] = v
		}
	}

	r, f, m, err := scoring.NewQuantileScorer(opts).ScoreColumns(cols[0], cols[1], cols[2])
	if err != nil {
		return ScoreResult{}, err
	}
	res.Rows = make([]models.ScoredRow, len(records))
	for n, rec := range records {
		res.Rows[n] = models.NewScoredRow(rec.ID, r[n], f[n], m[n])
	}
	return res, nil
}
