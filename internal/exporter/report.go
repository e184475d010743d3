// Package exporter persists evaluation results as CSV and Excel reports.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"housecli/internal/pipeline"
)

// reportHeader is the column layout shared by both report formats.
var reportHeader = []string{"run_id", "approach", "label", "mae", "rmse", "r2", "rows", "columns", "duration"}

// ReportWriter writes approach-comparison reports into a directory.
type ReportWriter struct {
	dir string
}

// NewReportWriter returns a writer rooted at dir. The directory is created
// on first write.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

func reportRows(results []*pipeline.Evaluation) [][]string {
	rows := make([][]string, 0, len(results))
	for _, ev := range results {
		rows = append(rows, []string{
			ev.RunID,
			string(ev.Approach),
			ev.Label,
			strconv.FormatFloat(ev.MAE, 'f', 4, 64),
			strconv.FormatFloat(ev.RMSE, 'f', 4, 64),
			strconv.FormatFloat(ev.R2, 'f', 6, 64),
			strconv.Itoa(ev.Rows),
			strconv.Itoa(ev.Columns),
			ev.Duration.String(),
		})
	}
	return rows
}

func (w *ReportWriter) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	return nil
}

// WriteCSV writes the comparison report as a UTF-8 CSV with a BOM so Excel
// opens it cleanly. Returns the full path of the written file.
func (w *ReportWriter) WriteCSV(name string, results []*pipeline.Evaluation) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(reportHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range reportRows(results) {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}

	slog.Info("wrote comparison report",
		slog.String("path", path),
		slog.Int("approaches", len(results)))
	return path, nil
}

// WriteXLSX writes the comparison report as an Excel workbook with a single
// "Comparison" sheet. Returns the full path of the written file.
func (w *ReportWriter) WriteXLSX(name string, results []*pipeline.Evaluation) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comparison"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", fmt.Errorf("write header cell: %w", err)
		}
	}
	for rowIdx, ev := range results {
		values := []any{
			ev.RunID, string(ev.Approach), ev.Label,
			ev.MAE, ev.RMSE, ev.R2,
			ev.Rows, ev.Columns, ev.Duration.String(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", fmt.Errorf("write result cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	slog.Info("wrote comparison workbook",
		slog.String("path", path),
		slog.Int("approaches", len(results)))
	return path, nil
}
