package estimate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/voltfield/ohmwork/internal/model"
)

func record(unit model.UnitOfMeasure, hours map[model.Condition]float64) *model.LaborRecord {
	return &model.LaborRecord{
		ID:    1,
		Item:  "test record",
		Unit:  unit,
		Hours: hours,
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeEachUnit(t *testing.T) {
	li := model.PartLineItem{
		Quantity:  d("20"),
		Condition: model.ConditionAverage,
		Match: model.MatchResult{
			Record: record(model.UnitEach, map[model.Condition]float64{
				model.ConditionAverage: 0.35,
			}),
			Status:     model.MatchAutoAccepted,
			Confidence: 95,
		},
	}

	Compute(&li, d("175"))

	// 0.35 hrs x 20 units = 7 hours, 7 x $175 = $1,225.00 exactly
	if !li.LaborHours.Equal(d("7")) {
		t.Errorf("LaborHours = %s, want 7", li.LaborHours)
	}
	if li.LaborCost.StringFixed(2) != "1225.00" {
		t.Errorf("LaborCost = %s, want 1225.00", li.LaborCost.StringFixed(2))
	}
	if li.Flagged {
		t.Error("clean computation must not flag the line")
	}
}

func TestComputePerHundredAndPerThousand(t *testing.T) {
	tests := []struct {
		name      string
		unit      model.UnitOfMeasure
		quantity  string
		perUnit   float64
		wantHours string
	}{
		{name: "per hundred", unit: model.UnitPerHundred, quantity: "250", perUnit: 3.5, wantHours: "8.75"},
		{name: "per thousand", unit: model.UnitPerThousand, quantity: "2500", perUnit: 4.5, wantHours: "11.25"},
		{name: "fractional feet", unit: model.UnitPerHundred, quantity: "10", perUnit: 3.5, wantHours: "0.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := model.PartLineItem{
				Quantity:  d(tt.quantity),
				Condition: model.ConditionAverage,
				Match: model.MatchResult{
					Record: record(tt.unit, map[model.Condition]float64{
						model.ConditionAverage: tt.perUnit,
					}),
					Status: model.MatchAutoAccepted,
				},
			}

			Compute(&li, d("100"))

			if !li.LaborHours.Equal(d(tt.wantHours)) {
				t.Errorf("LaborHours = %s, want %s", li.LaborHours, tt.wantHours)
			}
		})
	}
}

func TestComputeConditionFallback(t *testing.T) {
	// Remodel hours are absent; the calculator silently falls back to
	// Average rather than flagging.
	li := model.PartLineItem{
		Quantity:  d("4"),
		Condition: model.ConditionRemodel,
		Match: model.MatchResult{
			Record: record(model.UnitEach, map[model.Condition]float64{
				model.ConditionAverage: 0.25,
			}),
			Status: model.MatchAutoAccepted,
		},
	}

	Compute(&li, d("100"))

	if !li.LaborHours.Equal(d("1")) {
		t.Errorf("LaborHours = %s, want 1 (Average fallback)", li.LaborHours)
	}
	if li.Flagged {
		t.Error("Average fallback must not flag the line")
	}
}

func TestComputeHoursUnavailable(t *testing.T) {
	// Neither the requested condition nor Average exists: flag, cost zero.
	li := model.PartLineItem{
		Quantity:  d("4"),
		Condition: model.ConditionRemodel,
		Match: model.MatchResult{
			Record: record(model.UnitEach, map[model.Condition]float64{
				model.ConditionEasy: 0.25,
			}),
			Status: model.MatchAutoAccepted,
		},
	}

	Compute(&li, d("100"))

	if !li.LaborHours.IsZero() || !li.LaborCost.IsZero() {
		t.Errorf("hours/cost = %s/%s, want zero", li.LaborHours, li.LaborCost)
	}
	if !li.Flagged {
		t.Fatal("line without usable hours must be flagged")
	}
	if li.FlagReasons[len(li.FlagReasons)-1] != ReasonHoursUnavailable {
		t.Errorf("flag reasons = %v", li.FlagReasons)
	}
}

func TestComputeNoRecord(t *testing.T) {
	li := model.PartLineItem{
		Quantity:  d("3"),
		Condition: model.ConditionAverage,
		Match:     model.MatchResult{Status: model.MatchNone},
	}

	Compute(&li, d("100"))

	if !li.LaborHours.IsZero() || !li.LaborCost.IsZero() || !li.MaterialCost.IsZero() {
		t.Error("unmatched line must cost zero")
	}
}

func TestComputeMaterialCost(t *testing.T) {
	price := d("1.37")
	li := model.PartLineItem{
		Quantity:      d("20"),
		Condition:     model.ConditionAverage,
		MaterialPrice: &price,
		Match:         model.MatchResult{Status: model.MatchNone},
	}

	Compute(&li, d("100"))

	if li.MaterialCost.StringFixed(2) != "27.40" {
		t.Errorf("MaterialCost = %s, want 27.40", li.MaterialCost.StringFixed(2))
	}
}

// Recomputing a line any number of times must yield identical figures;
// decimal arithmetic cannot drift the way repeated float rounding does.
func TestComputeStableUnderRecomputation(t *testing.T) {
	price := d("0.93")
	li := model.PartLineItem{
		Quantity:      d("137"),
		Condition:     model.ConditionDifficult,
		MaterialPrice: &price,
		Match: model.MatchResult{
			Record: record(model.UnitPerHundred, map[model.Condition]float64{
				model.ConditionDifficult: 4.25,
			}),
			Status: model.MatchAutoAccepted,
		},
	}

	Compute(&li, d("112.50"))
	hours, labor, material := li.LaborHours, li.LaborCost, li.MaterialCost

	for i := 0; i < 50; i++ {
		Compute(&li, d("112.50"))
	}

	if !li.LaborHours.Equal(hours) || !li.LaborCost.Equal(labor) || !li.MaterialCost.Equal(material) {
		t.Errorf("figures drifted under recomputation: %s/%s/%s vs %s/%s/%s",
			li.LaborHours, li.LaborCost, li.MaterialCost, hours, labor, material)
	}
}
