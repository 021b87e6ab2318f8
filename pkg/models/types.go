package models

import (
	"fmt"
)

/*
LOAD → table brute telle que fournie par l'import (CSV/XLSX/MySQL).
*/

// Table est la table d'entrée en mémoire. Les cellules restent du texte brut :
// la conversion numérique est faite par le moteur.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Record représente une ligne client après sélection des colonnes.
type Record struct {
	ID        string
	Recency   string
	Frequency string
	Monetary  string
}

// Value renvoie la cellule brute de la dimension demandée.
func (r Record) Value(d Dimension) string {
	switch d {
	case Recency:
		return r.Recency
	case Frequency:
		return r.Frequency
	case Monetary:
		return r.Monetary
	}
	return ""
}

// Dimension vaut R, F ou M.
type Dimension string

const (
	Recency   Dimension = "R"
	Frequency Dimension = "F"
	Monetary  Dimension = "M"
)

// Dimensions liste R, F, M dans l'ordre de notation.
var Dimensions = []Dimension{Recency, Frequency, Monetary}

// Column est le nom de la colonne d'entrée lue pour la dimension.
func (d Dimension) Column() string {
	switch d {
	case Recency:
		return "recency"
	case Frequency:
		return "frequency"
	case Monetary:
		return "monetary"
	}
	return ""
}

// ParseDimension accepte "R", "F" ou "M".
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case Recency, Frequency, Monetary:
		return Dimension(s), true
	}
	return "", false
}

/*
RULES → critères de notation par dimension
*/

// RuleKind identifie la variante portée par une Rule.
type RuleKind int

const (
	Interval RuleKind = iota
	GreaterThan
	LessThan
)

func (k RuleKind) String() string {
	switch k {
	case Interval:
		return "Interval"
	case GreaterThan:
		return "GreaterThan"
	case LessThan:
		return "LessThan"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// Rule est une clause de notation. Interval utilise Min/Max ;
// GreaterThan et LessThan n'utilisent que Bound.
type Rule struct {
	Kind  RuleKind
	Min   int
	Max   int
	Bound int
	Score int
}

func NewInterval(min, max, score int) Rule {
	return Rule{Kind: Interval, Min: min, Max: max, Score: score}
}

func NewGreaterThan(bound, score int) Rule {
	return Rule{Kind: GreaterThan, Bound: bound, Score: score}
}

func NewLessThan(bound, score int) Rule {
	return Rule{Kind: LessThan, Bound: bound, Score: score}
}

// RuleKey identifie une règle par sa structure (type + bornes, sans le score).
type RuleKey struct {
	Kind      RuleKind
	Low, High int
}

func (r Rule) Key() RuleKey {
	if r.Kind == Interval {
		return RuleKey{Kind: Interval, Low: r.Min, High: r.Max}
	}
	return RuleKey{Kind: r.Kind, Low: r.Bound, High: r.Bound}
}

func (r Rule) String() string {
	switch r.Kind {
	case Interval:
		return fmt.Sprintf("Interval(%d,%d)=%d", r.Min, r.Max, r.Score)
	case GreaterThan:
		return fmt.Sprintf("GreaterThan(%d)=%d", r.Bound, r.Score)
	case LessThan:
		return fmt.Sprintf("LessThan(%d)=%d", r.Bound, r.Score)
	}
	return fmt.Sprintf("%s=%d", r.Kind, r.Score)
}

// RuleSet contient les règles d'une dimension dans l'ordre de déclaration.
// Une règle dont la clé existe déjà remplace le score à sa position d'origine.
type RuleSet struct {
	rules []Rule
	index map[RuleKey]int
}

// NewRuleSet construit un RuleSet à partir des règles dans l'ordre donné.
func NewRuleSet(rules ...Rule) RuleSet {
	var rs RuleSet
	for _, r := range rules {
		rs = rs.With(r)
	}
	return rs
}

// With renvoie une copie de l'ensemble avec r ajoutée (ou écrasée).
func (rs RuleSet) With(r Rule) RuleSet {
	out := RuleSet{
		rules: make([]Rule, len(rs.rules), len(rs.rules)+1),
		index: make(map[RuleKey]int, len(rs.rules)+1),
	}
	copy(out.rules, rs.rules)
	for k, v := range rs.index {
		out.index[k] = v
	}
	if i, ok := out.index[r.Key()]; ok {
		out.rules[i] = r
		return out
	}
	out.index[r.Key()] = len(out.rules)
	out.rules = append(out.rules, r)
	return out
}

// Rules renvoie une copie des règles dans l'ordre d'évaluation.
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

func (rs RuleSet) Len() int { return len(rs.rules) }

// MaxScore est le plus grand score de l'ensemble (0 si vide).
func (rs RuleSet) MaxScore() int {
	max := 0
	for i, r := range rs.rules {
		if i == 0 || r.Score > max {
			max = r.Score
		}
	}
	return max
}

/*
COMPUTE → lignes notées et segmentées
*/

// ScoredRow porte les scores d'un client. RFMScore vaut toujours R+F+M.
type ScoredRow struct {
	ID       string `json:"id" yaml:"id"`
	RScore   int    `json:"r_score" yaml:"r_score"`
	FScore   int    `json:"f_score" yaml:"f_score"`
	MScore   int    `json:"m_score" yaml:"m_score"`
	RFMScore int    `json:"rfm_score" yaml:"rfm_score"`
}

// NewScoredRow construit la ligne et calcule RFMScore.
func NewScoredRow(id string, r, f, m int) ScoredRow {
	return ScoredRow{ID: id, RScore: r, FScore: f, MScore: m, RFMScore: r + f + m}
}

func (s ScoredRow) Score(d Dimension) int {
	switch d {
	case Recency:
		return s.RScore
	case Frequency:
		return s.FScore
	case Monetary:
		return s.MScore
	}
	return 0
}

// Thresholds contient les valeurs de référence de l'arbre de segmentation.
type Thresholds struct {
	Recency   float64 `json:"recency_ref" yaml:"recency_ref"`
	Frequency float64 `json:"frequency_ref" yaml:"frequency_ref"`
	Monetary  float64 `json:"monetary_ref" yaml:"monetary_ref"`
}

// SegmentedRow est une ligne notée avec son segment.
type SegmentedRow struct {
	ScoredRow `yaml:",inline"`
	Segment   Segment `json:"segment" yaml:"segment"`
}

// SummaryEntry est une ligne de la répartition par segment.
type SummaryEntry struct {
	Segment    Segment `json:"segment" yaml:"segment"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// SegmentProfile contient la moyenne de chaque colonne de score pour un segment.
type SegmentProfile struct {
	Segment  Segment `json:"segment" yaml:"segment"`
	Count    int     `json:"count" yaml:"count"`
	RMean    float64 `json:"r_mean" yaml:"r_mean"`
	FMean    float64 `json:"f_mean" yaml:"f_mean"`
	MMean    float64 `json:"m_mean" yaml:"m_mean"`
	RFMMean  float64 `json:"rfm_mean" yaml:"rfm_mean"`
}

/*
CONFIG → paramètres explicites passés au moteur
*/

// Strategy choisit la méthode de notation des trois dimensions.
type Strategy string

const (
	StrategyRule     Strategy = "rule"
	StrategyQuantile Strategy = "quantile"
)

// QuantileOptions paramètre la notation statistique.
type QuantileOptions struct {
	MaxRetries int   // plafond de la boucle de dédoublonnage
	Seed       int64 // 0 = graine aléatoire
}

// ScoringConfig regroupe tout ce dont le moteur a besoin pour un run.
type ScoringConfig struct {
	Strategy Strategy
	Rules    map[Dimension]RuleSet
	Quantile QuantileOptions
	IDColumn string // "role_id" par défaut
}

// Config contient les paramètres d'une analyse.
type Config struct {
	Scoring    ScoringConfig
	Thresholds *Thresholds // nil = moyennes des colonnes de score
	Verbose    bool
}
