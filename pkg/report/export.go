package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"rfm-segment/pkg/models"
)

var exportHeader = []string{"id", "R_Score", "F_Score", "M_Score", "RFM_Score", "Segment"}

// WriteCSV écrit la table segmentée complète.
func WriteCSV(w io.Writer, rows []models.SegmentedRow, lang string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ID,
			strconv.Itoa(r.RScore),
			strconv.Itoa(r.FScore),
			strconv.Itoa(r.MScore),
			strconv.Itoa(r.RFMScore),
			r.Segment.Label(lang),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV écrit la table segmentée dans path.
func ExportCSV(path string, rows []models.SegmentedRow, lang string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows, lang); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
