// Package estimate extends matched labor records into costs and folds
// line items into estimate totals.
package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/voltfield/ohmwork/internal/model"
)

// Flag reasons attached to line items. Report layers surface these verbatim.
const (
	ReasonNoMatch          = "no labor match"
	ReasonLowConfidence    = "low-confidence match"
	ReasonQuantityDefault  = "quantity defaulted to 1"
	ReasonHoursUnavailable = "no labor hours for requested condition"
)

// moneyPlaces is the scale all cost figures are rounded to.
const moneyPlaces = 2

// hoursPlaces is the scale labor-hour extensions are rounded to.
const hoursPlaces = 4

// Compute fills in labor hours, labor cost and material cost for a line,
// in place. All arithmetic is decimal so repeated recomputation never
// drifts. A record without hours for the requested condition falls back to
// Average without flagging; a record missing both is flagged and costed at
// zero rather than inventing a number.
func Compute(li *model.PartLineItem, rate decimal.Decimal) {
	li.LaborHours = decimal.Zero
	li.LaborCost = decimal.Zero
	li.MaterialCost = decimal.Zero

	if rec := li.Match.Record; rec != nil {
		hours, ok := rec.HoursFor(li.Condition)
		if !ok {
			hours, ok = rec.HoursFor(model.ConditionAverage)
		}
		if ok {
			perUnit := decimal.NewFromFloat(hours)
			divisor := decimal.NewFromInt(rec.Unit.Divisor())
			li.LaborHours = perUnit.Mul(li.Quantity).Div(divisor).Round(hoursPlaces)
			li.LaborCost = li.LaborHours.Mul(rate).Round(moneyPlaces)
		} else {
			li.Flag(ReasonHoursUnavailable)
		}
	}

	if li.MaterialPrice != nil {
		li.MaterialCost = li.MaterialPrice.Mul(li.Quantity).Round(moneyPlaces)
	}
}
