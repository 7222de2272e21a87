package estimate

import (
	"github.com/voltfield/ohmwork/internal/model"
)

// Totals folds an ordered line-item sequence into estimate totals. It is a
// pure function: totals are recomputed from scratch whenever the lines
// change, never patched incrementally, so they cannot drift from the data.
func Totals(lines []model.PartLineItem) model.EstimateTotals {
	totals := model.EstimateTotals{LineCount: len(lines)}

	for i := range lines {
		li := &lines[i]

		totals.TotalLaborHours = totals.TotalLaborHours.Add(li.LaborHours)
		totals.TotalLaborCost = totals.TotalLaborCost.Add(li.LaborCost)
		totals.TotalMaterialCost = totals.TotalMaterialCost.Add(li.MaterialCost)

		switch li.Match.Status {
		case model.MatchAutoAccepted:
			totals.Histogram.AutoAccepted++
		case model.MatchNeedsReview:
			totals.Histogram.NeedsReview++
		case model.MatchNone:
			totals.Histogram.NoMatch++
		}

		// Action items keep original line order.
		if li.Flagged {
			totals.ActionItems = append(totals.ActionItems, i)
		}
	}

	totals.TotalCost = totals.TotalLaborCost.Add(totals.TotalMaterialCost)
	return totals
}
