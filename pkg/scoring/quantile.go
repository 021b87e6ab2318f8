package scoring

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"rfm-segment/pkg/models"
)

const (
	// DefaultMaxRetries borne la boucle de dédoublonnage.
	DefaultMaxRetries = 10
	noiseScale        = 1e-9
	quartiles         = 4
)

// QuantileScorer note les trois dimensions par quartiles après normalisation.
type QuantileScorer struct {
	maxRetries int
	noise      func() float64
}

// NewQuantileScorer construit un scorer. Seed 0 tire une graine aléatoire.
func NewQuantileScorer(opts models.QuantileOptions) *QuantileScorer {
	seed := uint64(opts.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &QuantileScorer{
		maxRetries: maxRetries,
		noise:      func() float64 { return rng.Float64() * noiseScale },
	}
}

// ScoreColumns note les colonnes brutes R, F et M (même longueur) et renvoie
// les scores 1..4 de chaque dimension. Une cellule NaN est une valeur absente :
// elle est exclue de la normalisation et des quartiles, et notée 0.
func (q *QuantileScorer) ScoreColumns(recency, frequency, monetary []float64) (r, f, m []int, err error) {
	n := len(recency)
	if len(frequency) != n || len(monetary) != n {
		return nil, nil, nil, fmt.Errorf("%w: column lengths differ (%d/%d/%d)",
			models.ErrSchema, n, len(frequency), len(monetary))
	}

	cols := make([][]float64, 0, 3)
	for _, c := range []struct {
		dim models.Dimension
		raw []float64
	}{
		{models.Recency, recency},
		{models.Frequency, frequency},
		{models.Monetary, monetary},
	} {
		norm, err := Normalize(c.dim, c.raw)
		if err != nil {
			return nil, nil, nil, err
		}
		cols = append(cols, norm)
	}

	q.perturb(cols)
	for attempt := 0; hasDuplicateTuple(cols); attempt++ {
		if attempt >= q.maxRetries {
			return nil, nil, nil, fmt.Errorf("%w: duplicate rows remain after %d retries",
				models.ErrConvergence, q.maxRetries)
		}
		q.perturb(cols)
	}

	out := make([][]int, 0, 3)
	for i, col := range cols {
		bins, err := Quartiles(col)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: %w", models.Dimensions[i].Column(), err)
		}
		out = append(out, bins)
	}
	return out[0], out[1], out[2], nil
}

// Normalize applique la compression log(1+x) (F et M) puis la mise à
// l'échelle min-max ; R utilise la forme inversée 1 - (x-min)/(max-min).
// Les NaN (absents) restent NaN ; il faut au moins 4 valeurs distinctes
// parmi les présentes.
func Normalize(d models.Dimension, raw []float64) ([]float64, error) {
	col := make([]float64, len(raw))
	copy(col, raw)
	if d == models.Frequency || d == models.Monetary {
		col = Log1p(col)
	}
	for i, v := range col {
		if math.IsNaN(raw[i]) {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s contains an undefined value", models.ErrInsufficientData, d.Column())
		}
	}
	if distinct(col) < quartiles {
		return nil, fmt.Errorf("%w: %s has fewer than %d distinct values",
			models.ErrInsufficientData, d.Column(), quartiles)
	}
	if d == models.Recency {
		return InverseMinMax(col), nil
	}
	return MinMax(col), nil
}

// Log1p renvoie log(1+x) pour chaque valeur.
func Log1p(col []float64) []float64 {
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = math.Log1p(v)
	}
	return out
}

// MinMax ramène la colonne dans [0,1], NaN ignorés. La colonne doit avoir max > min.
func MinMax(col []float64) []float64 {
	lo, hi := bounds(col)
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// InverseMinMax renvoie 1 - MinMax(col).
func InverseMinMax(col []float64) []float64 {
	out := MinMax(col)
	for i := range out {
		out[i] = 1 - out[i]
	}
	return out
}

// Quartiles découpe la colonne en 4 classes d'effectif égal, libellées 1..4
// par valeur croissante. Bornes interpolées linéairement, classes fermées à
// droite, la plus petite valeur tombe en classe 1. Les NaN sont notés 0.
func Quartiles(col []float64) ([]int, error) {
	sorted := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) < quartiles {
		return nil, fmt.Errorf("%w: %d values for %d bins", models.ErrInsufficientData, len(sorted), quartiles)
	}
	sort.Float64s(sorted)

	edges := make([]float64, quartiles-1)
	for i := range edges {
		edges[i] = quantile(sorted, float64(i+1)/quartiles)
	}
	prev := sorted[0]
	for _, e := range edges {
		if !(e > prev) {
			return nil, fmt.Errorf("%w: quartile edges are not unique", models.ErrInsufficientData)
		}
		prev = e
	}

	out := make([]int, len(col))
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		out[i] = sort.Search(len(edges), func(j int) bool { return v <= edges[j] }) + 1
	}
	return out, nil
}

func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func (q *QuantileScorer) perturb(cols [][]float64) {
	for _, col := range cols {
		for i := range col {
			col[i] += q.noise()
		}
	}
}

func hasDuplicateTuple(cols [][]float64) bool {
	seen := make(map[[3]float64]struct{}, len(cols[0]))
	for i := range cols[0] {
		k := [3]float64{cols[0][i], cols[1][i], cols[2][i]}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}

func distinct(col []float64) int {
	seen := make(map[float64]struct{}, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

func bounds(col []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range col {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
