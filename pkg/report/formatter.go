package report

import (
	"fmt"
	"io"

	"rfm-segment/pkg/calculator"
)

// Formatter écrit un résultat d'analyse.
type Formatter interface {
	Format(w io.Writer, res *calculator.Result) error
}

// NewFormatter renvoie le formatter du format demandé.
func NewFormatter(format, lang string, describe bool) (Formatter, error) {
	switch format {
	case "", "console":
		return ConsoleFormatter{Lang: lang, Describe: describe}, nil
	case "json":
		return JSONFormatter{Lang: lang}, nil
	case "yaml":
		return YAMLFormatter{Lang: lang}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
