package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"rfm-segment/pkg/models"
)

// ParseValue convertit une cellule brute en entier, comme int(float(x)) :
// la partie décimale est tronquée vers zéro.
func ParseValue(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", models.ErrValueCoercion)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrValueCoercion, raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q out of range", models.ErrValueCoercion, raw)
	}
	return int(f), nil
}

// Score renvoie le score de la première règle qui correspond à value, 0 sinon.
//
// Avec reverse, seul un match Interval est inversé en max(scores) - s + 1 ;
// GreaterThan et LessThan renvoient leur score tel quel.
func Score(value int, rs models.RuleSet, reverse bool) int {
	for _, r := range rs.Rules() {
		switch r.Kind {
		case models.Interval:
			if r.Min <= value && value <= r.Max {
				if reverse {
					return rs.MaxScore() - r.Score + 1
				}
				return r.Score
			}
		case models.GreaterThan:
			if value > r.Bound {
				return r.Score
			}
		case models.LessThan:
			if value < r.Bound {
				return r.Score
			}
		}
	}
	return 0
}

// ScoreValue convertit raw puis le note. En cas d'échec de conversion,
// renvoie 0 et une erreur ErrValueCoercion.
func ScoreValue(raw string, rs models.RuleSet, reverse bool) (int, error) {
	v, err := ParseValue(raw)
	if err != nil {
		return 0, err
	}
	return Score(v, rs, reverse), nil
}

// ParseNumber lit une cellule brute comme un réel fini.
func ParseNumber(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", models.ErrValueCoercion, raw)
	}
	return f, nil
}
