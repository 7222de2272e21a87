package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/model"
)

// WriteSummary writes a plain-text summary report: labor and material
// totals, match-quality counts and the action-item list in line order.
func WriteSummary(w io.Writer, est *model.Estimate) error {
	totals := estimate.Totals(est.Lines)

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	bar := strings.Repeat("-", 40)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "ELECTRICAL PROJECT COST ESTIMATE - SUMMARY REPORT\n")
	fmt.Fprintf(&b, "Estimate:  %s\n", est.Name)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "LABOR SUMMARY\n%s\n", bar)
	fmt.Fprintf(&b, "  Total Labor Hours:    %10s hrs\n", totals.TotalLaborHours.StringFixed(2))
	fmt.Fprintf(&b, "  Labor Rate:           $%9s/hr\n", est.HourlyRate.StringFixed(2))
	fmt.Fprintf(&b, "  Total Labor Cost:     $%9s\n\n", totals.TotalLaborCost.StringFixed(2))

	fmt.Fprintf(&b, "MATERIAL SUMMARY\n%s\n", bar)
	fmt.Fprintf(&b, "  Total Material Cost:  $%9s\n\n", totals.TotalMaterialCost.StringFixed(2))

	fmt.Fprintf(&b, "PROJECT TOTAL\n%s\n", bar)
	fmt.Fprintf(&b, "  Labor + Material:     $%9s\n\n", totals.TotalCost.StringFixed(2))

	fmt.Fprintf(&b, "MATCH QUALITY\n%s\n", bar)
	fmt.Fprintf(&b, "  Auto-accepted:        %4d parts\n", totals.Histogram.AutoAccepted)
	fmt.Fprintf(&b, "  Needs review:         %4d parts\n", totals.Histogram.NeedsReview)
	fmt.Fprintf(&b, "  No match:             %4d parts\n", totals.Histogram.NoMatch)
	fmt.Fprintf(&b, "  Action items:         %4d parts\n\n", totals.ActionItemCount())

	if len(totals.ActionItems) > 0 {
		fmt.Fprintf(&b, "ACTION ITEMS\n%s\n", bar)
		for _, idx := range totals.ActionItems {
			li := &est.Lines[idx]
			fmt.Fprintf(&b, "  %3d. %-40s  %s\n",
				idx+1, truncate(li.RawDescription, 40), joinReasons(li.FlagReasons))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "DETAILED LINE ITEMS\n%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(&b, "%-35s %6s %8s %10s %10s\n", "Part", "Qty", "Hrs", "L.Cost", "M.Cost")
	for i := range est.Lines {
		li := &est.Lines[i]
		fmt.Fprintf(&b, "%-35s %6s %8s %10s %10s\n",
			truncate(li.RawDescription, 35),
			li.Quantity.String(),
			li.LaborHours.StringFixed(2),
			"$"+li.LaborCost.StringFixed(2),
			"$"+li.MaterialCost.StringFixed(2))
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(&b, "%-35s %6s %8s %10s %10s\n", "TOTALS", "",
		totals.TotalLaborHours.StringFixed(2),
		"$"+totals.TotalLaborCost.StringFixed(2),
		"$"+totals.TotalMaterialCost.StringFixed(2))

	_, err := io.WriteString(w, b.String())
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
