package sink

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sms-campaign-analysis/internal/report"
)

// ExcelSink writes all tables into a single workbook, one sheet per table,
// for the report writeup.
type ExcelSink struct {
	Path string
}

func (s *ExcelSink) Name() string { return "xlsx:" + s.Path }

func (s *ExcelSink) Write(ctx context.Context, runID string, tables []report.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(s.Path)
}

func writeSheet(f *excelize.File, sheet string, t report.Table) error {
	if err := f.SetSheetRow(sheet, "A1", &t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
