package report

import (
	"encoding/json"
	"io"

	"rfm-segment/pkg/calculator"
	"rfm-segment/pkg/models"

	"gopkg.in/yaml.v3"
)

// Document est la forme sérialisée (JSON/YAML) d'un résultat.
type Document struct {
	Rows       int                     `json:"rows" yaml:"rows"`
	Thresholds models.Thresholds       `json:"thresholds" yaml:"thresholds"`
	Summary    []SummaryLine           `json:"summary" yaml:"summary"`
	Profiles   []models.SegmentProfile `json:"profiles" yaml:"profiles"`
	Warnings   []string                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SummaryLine ajoute le libellé localisé à une SummaryEntry.
type SummaryLine struct {
	models.SummaryEntry `yaml:",inline"`
	Label               string `json:"label" yaml:"label"`
}

// NewDocument construit le document d'un résultat.
func NewDocument(res *calculator.Result, lang string) Document {
	doc := Document{
		Rows:       len(res.Segmented),
		Thresholds: res.Thresholds,
		Profiles:   res.Profiles,
	}
	for _, e := range res.Summary {
		doc.Summary = append(doc.Summary, SummaryLine{SummaryEntry: e, Label: e.Segment.Label(lang)})
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	return doc
}

// JSONFormatter écrit le document en JSON indenté.
type JSONFormatter struct{ Lang string }

func (f JSONFormatter) Format(w io.Writer, res *calculator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res, f.Lang))
}

// YAMLFormatter écrit le document en YAML.
type YAMLFormatter struct{ Lang string }

func (f YAMLFormatter) Format(w io.Writer, res *calculator.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(res, f.Lang)); err != nil {
		return err
	}
	return enc.Close()
}
