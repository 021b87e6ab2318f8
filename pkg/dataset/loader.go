package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rfm-segment/pkg/models"

	"github.com/xuri/excelize/v2"
)

// LoadFile charge un fichier .csv ou .xlsx ; la première ligne donne les noms
// de colonnes.
func LoadFile(path string) (models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return models.Table{}, fmt.Errorf("unsupported file type: %s", filepath.Base(path))
	}
}

// LoadCSV lit un fichier CSV.
func LoadCSV(path string) (models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	t, err := ReadCSV(f)
	if err != nil {
		return models.Table{}, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV lit une table CSV depuis r.
func ReadCSV(r io.Reader) (models.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// lignes courtes acceptées : les cellules absentes sont lues vides
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, err
	}
	return fromRecords(records)
}

// LoadXLSX lit la première feuille d'un classeur, valeurs brutes.
func LoadXLSX(path string) (models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Table{}, fmt.Errorf("xlsx: %s has no sheet", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Table{}, fmt.Errorf("xlsx: read %s: %w", path, err)
	}
	t, err := fromRecords(rows)
	if err != nil {
		return models.Table{}, fmt.Errorf("xlsx: %s: %w", path, err)
	}
	return t, nil
}

func fromRecords(records [][]string) (models.Table, error) {
	if len(records) == 0 {
		return models.Table{}, fmt.Errorf("empty file (no header row)")
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return models.Table{Columns: header, Rows: rows}, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
