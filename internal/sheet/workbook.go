package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps a single Excel file and its first worksheet. It is loaded
// once, mutated cell by cell, and written back to the same path on Save.
type Workbook struct {
	file  *excelize.File
	path  string
	sheet string
}

// Open validates and loads the workbook at path, selecting the first sheet.
func Open(path string) (*Workbook, error) {
	if err := validateFile(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f, path: path, sheet: f.GetSheetName(0)}, nil
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a workbook", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return errors.New("file must be an Excel file (.xlsx or .xls)")
	}
	return nil
}

// CellValue returns the trimmed text at the 1-based row/column, or "" when
// the coordinates fall outside the sheet.
func (w *Workbook) CellValue(row, col int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := w.file.GetCellValue(w.sheet, cell)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// SetCell writes value at the 1-based row/column.
func (w *Workbook) SetCell(row, col int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}

// Rows returns the sheet contents, one slice of cell strings per row.
func (w *Workbook) Rows() ([][]string, error) {
	return w.file.GetRows(w.sheet)
}

// MaxRow returns the index of the last populated row.
func (w *Workbook) MaxRow() int {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0
	}
	return len(rows)
}

// MaxCol returns the widest populated column across all rows.
func (w *Workbook) MaxCol() int {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0
	}
	widest := 0
	for _, row := range rows {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// Save writes the workbook back to the path it was opened from. Called once
// per run; a crash before this point loses the run's progress.
func (w *Workbook) Save() error {
	return w.file.SaveAs(w.path)
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.file.Close()
}
