package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/synthbooks/internal/tables"
)

// WorkbookName is the file the XLSX exporter writes.
const WorkbookName = "dataset.xlsx"

// XLSXExporter writes every table into one workbook, a sheet per table.
type XLSXExporter struct{}

func (e *XLSXExporter) Format() string { return "xlsx" }

// Export writes dataset.xlsx. Int and Decimal columns become numeric cells.
func (e *XLSXExporter) Export(ctx context.Context, dir string, ts []tables.Table) ([]File, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	files := make([]File, 0, len(ts))
	for i, t := range ts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return nil, fmt.Errorf("naming sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t, headerStyle); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", t.Name, err)
		}
		files = append(files, File{Table: t.Name, Format: e.Format(), Name: WorkbookName, Rows: len(t.Rows)})
	}

	if err := f.SaveAs(filepath.Join(dir, WorkbookName)); err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}
	return files, nil
}

func writeSheet(f *excelize.File, t tables.Table, headerStyle int) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = cellValue(t.Columns[c].Kind, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}
	return nil
}

// cellValue types a formatted cell; values that do not parse stay text.
func cellValue(k tables.Kind, s string) any {
	switch k {
	case tables.Int:
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	case tables.Decimal:
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			return x
		}
	}
	return s
}
