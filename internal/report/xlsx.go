package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/model"
)

const sheetName = "Estimate"

// WriteXLSX writes an estimate workbook: one sheet of line items with a
// styled header and a totals block underneath.
func WriteXLSX(path string, est *model.Estimate) error {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range columns {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return fmt.Errorf("failed to address header cell: %w", cellErr)
		}
		if setErr := f.SetCellValue(sheetName, cell, name); setErr != nil {
			return fmt.Errorf("failed to write header: %w", setErr)
		}
		if styleErr := f.SetCellStyle(sheetName, cell, cell, headerStyle); styleErr != nil {
			return fmt.Errorf("failed to style header: %w", styleErr)
		}
	}

	for i := range est.Lines {
		row := lineRow(&est.Lines[i])
		for col, value := range row {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, i+2)
			if cellErr != nil {
				return fmt.Errorf("failed to address cell: %w", cellErr)
			}
			if setErr := f.SetCellValue(sheetName, cell, value); setErr != nil {
				return fmt.Errorf("failed to write line %d: %w", i+1, setErr)
			}
		}
	}

	totals := estimate.Totals(est.Lines)
	totalsStart := len(est.Lines) + 3
	totalRows := [][2]string{
		{"Total Labor Hours", totals.TotalLaborHours.StringFixed(2)},
		{"Total Labor Cost", totals.TotalLaborCost.StringFixed(2)},
		{"Total Material Cost", totals.TotalMaterialCost.StringFixed(2)},
		{"Project Total", totals.TotalCost.StringFixed(2)},
		{"Action Items", fmt.Sprintf("%d", totals.ActionItemCount())},
	}
	for i, pair := range totalRows {
		labelCell := fmt.Sprintf("A%d", totalsStart+i)
		valueCell := fmt.Sprintf("B%d", totalsStart+i)
		if err := f.SetCellValue(sheetName, labelCell, pair[0]); err != nil {
			return fmt.Errorf("failed to write totals label: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, pair[1]); err != nil {
			return fmt.Errorf("failed to write totals value: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
