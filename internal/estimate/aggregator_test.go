package estimate

import (
	"reflect"
	"testing"

	"github.com/voltfield/ohmwork/internal/model"
)

func TestTotals(t *testing.T) {
	lines := []model.PartLineItem{
		{
			LaborHours: d("7"),
			LaborCost:  d("1225.00"),
			Match:      model.MatchResult{Status: model.MatchAutoAccepted},
		},
		{
			LaborHours:   d("0.35"),
			LaborCost:    d("39.38"),
			MaterialCost: d("27.40"),
			Match:        model.MatchResult{Status: model.MatchNeedsReview},
			Flagged:      true,
		},
		{
			Match:   model.MatchResult{Status: model.MatchNone},
			Flagged: true,
		},
	}

	totals := Totals(lines)

	if totals.LineCount != 3 {
		t.Errorf("LineCount = %d, want 3", totals.LineCount)
	}
	if !totals.TotalLaborHours.Equal(d("7.35")) {
		t.Errorf("TotalLaborHours = %s, want 7.35", totals.TotalLaborHours)
	}
	if !totals.TotalLaborCost.Equal(d("1264.38")) {
		t.Errorf("TotalLaborCost = %s, want 1264.38", totals.TotalLaborCost)
	}
	if !totals.TotalMaterialCost.Equal(d("27.40")) {
		t.Errorf("TotalMaterialCost = %s, want 27.40", totals.TotalMaterialCost)
	}
	// Grand total is always the sum of the two components
	if !totals.TotalCost.Equal(totals.TotalLaborCost.Add(totals.TotalMaterialCost)) {
		t.Errorf("TotalCost = %s, want labor + material", totals.TotalCost)
	}

	want := model.MatchHistogram{AutoAccepted: 1, NeedsReview: 1, NoMatch: 1}
	if totals.Histogram != want {
		t.Errorf("Histogram = %+v, want %+v", totals.Histogram, want)
	}

	// Action items keep original line order
	if !reflect.DeepEqual(totals.ActionItems, []int{1, 2}) {
		t.Errorf("ActionItems = %v, want [1 2]", totals.ActionItems)
	}
	if totals.ActionItemCount() != 2 {
		t.Errorf("ActionItemCount() = %d, want 2", totals.ActionItemCount())
	}
}

func TestTotalsEmpty(t *testing.T) {
	totals := Totals(nil)

	if totals.LineCount != 0 {
		t.Errorf("LineCount = %d, want 0", totals.LineCount)
	}
	if !totals.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", totals.TotalCost)
	}
	if totals.ActionItemCount() != 0 {
		t.Errorf("ActionItemCount() = %d, want 0", totals.ActionItemCount())
	}
}
