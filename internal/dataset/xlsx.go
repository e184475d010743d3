package dataset

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of an Excel workbook into a Table. The
// sheet must carry a header row followed by data rows; type inference is
// identical to LoadCSV.
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	t, err := fromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}

	slog.Info("loaded workbook",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))
	return t, nil
}

// Load dispatches on the file extension: .xlsx goes through excelize,
// everything else is treated as CSV.
func Load(path string) (*Table, error) {
	if len(path) > 5 && path[len(path)-5:] == ".xlsx" {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}
