package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sztaroszta/dirscope/internal/entry"
)

// Fixed widths matching the inventory's column layout; level columns all
// share levelColumnWidth.
var columnWidths = map[string]float64{
	"A": 5,  // row number
	"B": 25, // path
	"C": 11, // size (KB)
	"D": 12, // size (bytes)
	"E": 19, // creation date
	"F": 19, // modified date
	"G": 10, // hidden status
	"H": 10, // tags
	"I": 15, // kind
	"J": 7,  // file type
}

const levelColumnWidth = 10

// WriteXLSX renders the report as a formatted workbook: bold frozen
// header, fixed column widths, date and size number formats, and an
// autofilter over the whole range.
func WriteXLSX(report *entry.Report, outPath, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Directory Info"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	cols := fixedColumns + report.MaxDepth
	if err := f.SetSheetRow(sheet, "A1", rowOf(headers(report.MaxDepth))); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range report.Entries {
		row := make([]interface{}, 0, cols)
		row = append(row,
			i+1,
			e.RelPath,
			float64(e.Size)/1024.0,
			e.Size,
			nil,
			e.Modified,
			e.Hidden,
			strings.Join(e.Tags, ", "),
			e.Kind,
			e.FileType,
		)
		if e.Created != nil {
			row[4] = *e.Created
		}
		for _, level := range e.Levels {
			row = append(row, level)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := formatWorksheet(f, sheet, len(report.Entries), cols); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func formatWorksheet(f *excelize.File, sheet string, rows, cols int) error {
	for col, width := range columnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	for c := fixedColumns + 1; c <= cols; c++ {
		name, _ := excelize.ColumnNumberToName(c)
		if err := f.SetColWidth(sheet, name, name, levelColumnWidth); err != nil {
			return fmt.Errorf("failed to set level column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(cols, 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if rows > 0 {
		dateFmt := "yyyy-mm-dd hh:mm:ss"
		dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		if err != nil {
			return fmt.Errorf("failed to create date style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "E2", fmt.Sprintf("F%d", rows+1), dateStyle); err != nil {
			return fmt.Errorf("failed to style date columns: %w", err)
		}

		// "0.00" for the KB column.
		kbStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return fmt.Errorf("failed to create size style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", rows+1), kbStyle); err != nil {
			return fmt.Errorf("failed to style size column: %w", err)
		}
	}

	// Keep the row-number and path columns plus the header in view.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      1,
		TopLeftCell: "C2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	lastCell, _ := excelize.CoordinatesToCellName(cols, rows+1)
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("failed to set autofilter: %w", err)
	}
	return nil
}

func rowOf(values []string) *[]interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return &row
}
