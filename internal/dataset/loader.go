package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// missingTokens are the cell values treated as missing during ingestion.
var missingTokens = map[string]struct{}{
	"":    {},
	"NA":  {},
	"N/A": {},
	"NaN": {},
	"nan": {},
}

func isMissingToken(v string) bool {
	_, ok := missingTokens[strings.TrimSpace(v)]
	return ok
}

// LoadCSV reads a comma-delimited file with a header row into a Table.
// Column types are inferred from the data: a column whose every non-missing
// cell parses as a float becomes numeric, anything else stays categorical.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 0 // enforce uniform width against the header

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("dataset %s has an empty header", path)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	t, err := fromRecords(header, records)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded dataset",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))
	return t, nil
}

// fromRecords builds a typed table from a header and raw string rows.
// Shared by the CSV and Excel loaders.
func fromRecords(header []string, records [][]string) (*Table, error) {
	nRows := len(records)
	nCols := len(header)

	cell := func(rec []string, j int) string {
		// Excel rows can be ragged on trailing empty cells.
		if j >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[j])
	}

	t := &Table{index: make(map[string]int, nCols)}
	for j := 0; j < nCols; j++ {
		name := strings.TrimSpace(header[j])
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", j+1)
		}

		numeric := true
		for i := 0; i < nRows; i++ {
			v := cell(records[i], j)
			if isMissingToken(v) {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
				break
			}
		}

		col := Column{Name: name}
		if numeric {
			col.Kind = KindNumeric
			col.Floats = make([]float64, nRows)
			for i := 0; i < nRows; i++ {
				v := cell(records[i], j)
				if isMissingToken(v) {
					col.Floats[i] = math.NaN()
					continue
				}
				parsed, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("parse %s row %d: %w", name, i+2, err)
				}
				col.Floats[i] = parsed
			}
		} else {
			col.Kind = KindCategorical
			col.Strings = make([]string, nRows)
			for i := 0; i < nRows; i++ {
				v := cell(records[i], j)
				if isMissingToken(v) {
					v = ""
				}
				col.Strings[i] = v
			}
		}
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}
