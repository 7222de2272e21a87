package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estimate is an ordered collection of part line items priced at one hourly
// labor rate. Totals are always recomputed from the lines by the
// aggregator, never stored alongside them.
type Estimate struct {
	CreatedAt        time.Time
	Name             string
	Lines            []PartLineItem
	HourlyRate       decimal.Decimal
	DefaultCondition Condition
	ID               int64
}

// MatchHistogram counts lines by match quality.
type MatchHistogram struct {
	AutoAccepted int
	NeedsReview  int
	NoMatch      int
}

// EstimateTotals is the aggregate view of an estimate. ActionItems holds
// the indices of flagged lines in original line order.
type EstimateTotals struct {
	TotalLaborHours   decimal.Decimal
	TotalLaborCost    decimal.Decimal
	TotalMaterialCost decimal.Decimal
	TotalCost         decimal.Decimal
	ActionItems       []int
	Histogram         MatchHistogram
	LineCount         int
}

// ActionItemCount returns the number of lines needing manual attention.
func (t *EstimateTotals) ActionItemCount() int {
	return len(t.ActionItems)
}
