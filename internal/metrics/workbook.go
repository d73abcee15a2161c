// Package metrics writes per-batch training statistics to a spreadsheet
// under the configured log directory.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Training"

// BatchRow is one row of the training sheet.
type BatchRow struct {
	Batch           int
	CumulativeSteps int
	Episodes        int
	MeanReward      float64
	RewardStddev    float64
	DurationSeconds float64
}

// Workbook accumulates batch rows in an xlsx file. The file is saved
// after every row so a crashed run still leaves usable logs behind.
type Workbook struct {
	f      *excelize.File
	path   string
	row    int
	logger zerolog.Logger
}

// NewWorkbook creates the log directory if needed and starts a workbook
// named after the run ID.
func NewWorkbook(dir, runID string, logger zerolog.Logger) (*Workbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("train_%s.xlsx", runID))

	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	headers := []interface{}{
		"Batch", "Cumulative Steps", "Episodes",
		"Mean Reward", "Reward Stddev", "Duration (s)",
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}

	return &Workbook{
		f:      f,
		path:   path,
		row:    2,
		logger: logger.With().Str("component", "metrics").Logger(),
	}, nil
}

// AddBatch appends one row and saves the file.
func (w *Workbook) AddBatch(r BatchRow) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	row := []interface{}{
		r.Batch, r.CumulativeSteps, r.Episodes,
		r.MeanReward, r.RewardStddev, r.DurationSeconds,
	}
	if err := w.f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("write batch row: %w", err)
	}
	w.row++
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// Rows returns the number of batch rows written so far.
func (w *Workbook) Rows() int { return w.row - 2 }

// Path returns the workbook's file path.
func (w *Workbook) Path() string { return w.path }

// Close saves and releases the workbook.
func (w *Workbook) Close() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	w.logger.Info().Str("path", w.path).Int("rows", w.Rows()).Msg("Training workbook written")
	return nil
}
