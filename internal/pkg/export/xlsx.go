package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report.
const SheetName = "Report"

// XLSX writes t as a single-sheet workbook: title rows, a bold frozen header
// row and the body. Numeric cells are stored as numbers.
func XLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C3E50"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	row := 1
	setRow := func(values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(SheetName, cell, &values)
	}

	if err := setRow([]any{t.Title}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", bold); err != nil {
		return err
	}
	if err := setRow([]any{t.Subtitle}); err != nil {
		return err
	}
	row++

	headerRow := row
	if err := setRow(toAny(t.Headers)); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(max(len(t.Headers), 1), headerRow)
	if err := f.SetCellStyle(SheetName, first, last, header); err != nil {
		return err
	}
	topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for _, r := range t.Rows {
		if err := setRow(toAny(r)); err != nil {
			return err
		}
	}
	if t.Summary != "" {
		row++
		if err := setRow([]any{t.Summary}); err != nil {
			return err
		}
	}

	if len(t.Headers) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
		if err := f.SetColWidth(SheetName, "A", lastCol, 14); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// toAny converts cells, keeping integers numeric.
func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			out[i] = n
			continue
		}
		out[i] = v
	}
	return out
}
