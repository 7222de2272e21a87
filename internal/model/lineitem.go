package model

import "github.com/shopspring/decimal"

// PartLineItem is one row in an estimate: a raw part description together
// with everything the engine derived from it. The only mutation allowed
// after creation is a price merge, which touches material fields only.
type PartLineItem struct {
	MaterialPrice  *decimal.Decimal
	RawDescription string
	CatalogID      string
	Unit           string
	PriceSource    string
	PriceURL       string
	FlagReasons    []string
	Quantity       decimal.Decimal
	LaborHours     decimal.Decimal
	LaborCost      decimal.Decimal
	MaterialCost   decimal.Decimal
	Match          MatchResult
	Condition      Condition
	QuantityParsed bool
	Flagged        bool
}

// Flag marks the line for review with a reason. Reasons accumulate; a line
// flagged for several causes lists all of them.
func (li *PartLineItem) Flag(reason string) {
	li.Flagged = true
	li.FlagReasons = append(li.FlagReasons, reason)
}

// TotalCost is the line's labor cost plus material cost.
func (li *PartLineItem) TotalCost() decimal.Decimal {
	return li.LaborCost.Add(li.MaterialCost)
}

// MatchedRecordID returns the matched record's identifier, or 0 when the
// line has no accepted match.
func (li *PartLineItem) MatchedRecordID() int {
	if li.Match.Record == nil {
		return 0
	}
	return li.Match.Record.ID
}
