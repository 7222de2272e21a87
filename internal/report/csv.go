// Package report renders finished estimates as CSV, XLSX and plain-text
// summary output.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/model"
)

// columns is the line-item result shape shared by the CSV and XLSX
// exporters.
var columns = []string{
	"Part", "Quantity", "Unit", "Condition",
	"Matched_Item", "Record_ID", "Confidence", "Review",
	"Labor_Hours", "Labor_Cost", "Material_Price", "Material_Cost",
	"Total_Cost", "Price_Source", "Price_URL", "Flags",
}

// WriteCSV writes an estimate's line items plus a totals row.
func WriteCSV(w io.Writer, est *model.Estimate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range est.Lines {
		if err := cw.Write(lineRow(&est.Lines[i])); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}

	totals := estimate.Totals(est.Lines)
	totalsRow := make([]string, len(columns))
	totalsRow[0] = "TOTALS"
	totalsRow[8] = totals.TotalLaborHours.StringFixed(2)
	totalsRow[9] = totals.TotalLaborCost.StringFixed(2)
	totalsRow[11] = totals.TotalMaterialCost.StringFixed(2)
	totalsRow[12] = totals.TotalCost.StringFixed(2)
	if err := cw.Write(totalsRow); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// lineRow renders one line item in column order.
func lineRow(li *model.PartLineItem) []string {
	matched := ""
	recordID := ""
	if li.Match.Record != nil {
		matched = li.Match.Record.Display()
		recordID = strconv.Itoa(li.Match.Record.ID)
	}

	materialPrice := ""
	if li.MaterialPrice != nil {
		materialPrice = li.MaterialPrice.StringFixed(2)
	}

	review := ""
	if li.Flagged {
		review = "REVIEW"
	}

	return []string{
		li.RawDescription,
		li.Quantity.String(),
		li.Unit,
		string(li.Condition),
		matched,
		recordID,
		strconv.Itoa(li.Match.Confidence),
		review,
		li.LaborHours.StringFixed(2),
		li.LaborCost.StringFixed(2),
		materialPrice,
		li.MaterialCost.StringFixed(2),
		li.TotalCost().StringFixed(2),
		li.PriceSource,
		li.PriceURL,
		joinReasons(li.FlagReasons),
	}
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += r
	}
	return out
}
