package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rfm-segment/pkg/models"
)

// jetons acceptés : anglais et libellés de l'interface d'origine
var kindTokens = map[string]models.RuleKind{
	"Interval":    models.Interval,
	"区间":          models.Interval,
	"GreaterThan": models.GreaterThan,
	"大于":          models.GreaterThan,
	"LessThan":    models.LessThan,
	"小于":          models.LessThan,
}

// ParseKind reconnaît un type de règle (Interval/GreaterThan/LessThan ou 区间/大于/小于).
func ParseKind(token string) (models.RuleKind, bool) {
	k, ok := kindTokens[strings.TrimSpace(token)]
	return k, ok
}

// ParseFile lit un fichier de paramètres (voir Parse).
func ParseFile(path string) (map[models.Dimension]models.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("params: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse lit des lignes "CATEGORIE:TYPE,BORNES,SCORE", par exemple
//
//	R:Interval,0-30,5
//	F:GreaterThan,10,4
//	M:小于,100,1
//
// Les lignes vides, sans ':' ou d'une catégorie inconnue sont ignorées.
func Parse(r io.Reader) (map[models.Dimension]models.RuleSet, error) {
	out := map[models.Dimension]models.RuleSet{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		category, body, _ := strings.Cut(line, ":")
		dim, ok := models.ParseDimension(strings.TrimSpace(category))
		if !ok {
			continue
		}
		rule, err := parseRule(body)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d (%s): %v", models.ErrParse, lineNo, dim, err)
		}
		out[dim] = out[dim].With(rule)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("params: read: %w", err)
	}
	return out, nil
}

func parseRule(body string) (models.Rule, error) {
	if strings.Contains(body, ":") {
		return models.Rule{}, fmt.Errorf("only one ':' allowed")
	}
	fields := strings.Split(body, ",")
	if len(fields) < 3 {
		return models.Rule{}, fmt.Errorf("expected TYPE,BOUNDS,SCORE")
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	kind, ok := ParseKind(fields[0])
	if !ok {
		return models.Rule{}, fmt.Errorf("unsupported type: %s", fields[0])
	}
	score, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return models.Rule{}, fmt.Errorf("invalid score: %q", fields[len(fields)-1])
	}

	switch kind {
	case models.Interval:
		lo, hi, err := parseRange(fields[1])
		if err != nil {
			return models.Rule{}, err
		}
		return models.NewInterval(lo, hi, score), nil
	case models.GreaterThan:
		bound, err := strconv.Atoi(fields[1])
		if err != nil {
			return models.Rule{}, fmt.Errorf("invalid bound: %q", fields[1])
		}
		return models.NewGreaterThan(bound, score), nil
	default:
		bound, err := strconv.Atoi(fields[1])
		if err != nil {
			return models.Rule{}, fmt.Errorf("invalid bound: %q", fields[1])
		}
		return models.NewLessThan(bound, score), nil
	}
}

// parseRange lit "min-max" ; min peut être négatif ("-5-10").
func parseRange(s string) (int, int, error) {
	skip := min(1, len(s))
	i := strings.Index(s[skip:], "-")
	if i < 0 {
		return 0, 0, fmt.Errorf("interval %q: expected min-max", s)
	}
	i += skip
	lo, err := strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return 0, 0, fmt.Errorf("interval %q: invalid min", s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return 0, 0, fmt.Errorf("interval %q: invalid max", s)
	}
	return lo, hi, nil
}

// Format réécrit les règles au format fichier, dans l'ordre R, F, M.
func Format(w io.Writer, rules map[models.Dimension]models.RuleSet) error {
	for _, d := range models.Dimensions {
		for _, r := range rules[d].Rules() {
			var line string
			switch r.Kind {
			case models.Interval:
				line = fmt.Sprintf("%s:%s,%d-%d,%d", d, r.Kind, r.Min, r.Max, r.Score)
			default:
				line = fmt.Sprintf("%s:%s,%d,%d", d, r.Kind, r.Bound, r.Score)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseThresholds lit le triplet "R,F,M" d'entiers. Une chaîne vide renvoie
// nil (références = moyennes).
func ParseThresholds(s string) (*models.Thresholds, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: reference values %q, use R,F,M", models.ErrParse, s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: reference values %q, use R,F,M", models.ErrParse, s)
		}
		vals[i] = v
	}
	return &models.Thresholds{
		Recency:   float64(vals[0]),
		Frequency: float64(vals[1]),
		Monetary:  float64(vals[2]),
	}, nil
}
