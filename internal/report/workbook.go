package report

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ademuri/spotify-eda/internal/table"
)

const WorkbookFile = "results.xlsx"

// Sheet is one worksheet of the results workbook.
type Sheet struct {
	Name  string
	Table *table.Table
}

// WriteWorkbook writes every non-empty sheet into a single workbook. Nothing
// is written when all sheets are empty.
func WriteWorkbook(dir string, sheets []Sheet) ([]string, error) {
	f := excelize.NewFile()
	defer f.Close()

	written := 0
	for _, s := range sheets {
		if s.Table == nil || s.Table.Len() == 0 {
			continue
		}
		if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("adding sheet %q: %w", s.Name, err)
		}
		if err := fillSheet(f, s); err != nil {
			return nil, err
		}
		written++
	}
	if written == 0 {
		return nil, nil
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	path := filepath.Join(dir, WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}
	return []string{path}, nil
}

func fillSheet(f *excelize.File, s Sheet) error {
	header := make([]interface{}, 0, len(s.Table.Columns()))
	for _, c := range s.Table.Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("writing %q header: %w", s.Name, err)
	}

	for i := 0; i < s.Table.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := s.Table.Row(i)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = sheetValue(v)
		}
		if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
			return fmt.Errorf("writing %q row %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

func sheetValue(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
	case nil:
		return ""
	}
	return v
}
