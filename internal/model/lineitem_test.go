package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPartLineItemFlag(t *testing.T) {
	var li PartLineItem
	if li.Flagged {
		t.Fatal("new line should not be flagged")
	}

	li.Flag("no labor match")
	li.Flag("quantity defaulted to 1")

	if !li.Flagged {
		t.Error("expected line to be flagged")
	}
	if len(li.FlagReasons) != 2 {
		t.Fatalf("expected 2 reasons, got %d: %v", len(li.FlagReasons), li.FlagReasons)
	}
	if li.FlagReasons[0] != "no labor match" {
		t.Errorf("reasons should accumulate in order, got %v", li.FlagReasons)
	}
}

func TestPartLineItemTotalCost(t *testing.T) {
	li := PartLineItem{
		LaborCost:    decimal.RequireFromString("122.50"),
		MaterialCost: decimal.RequireFromString("37.80"),
	}
	if got := li.TotalCost(); !got.Equal(decimal.RequireFromString("160.30")) {
		t.Errorf("TotalCost() = %s, want 160.30", got)
	}
}

func TestPartLineItemMatchedRecordID(t *testing.T) {
	var li PartLineItem
	if got := li.MatchedRecordID(); got != 0 {
		t.Errorf("unmatched line should report record ID 0, got %d", got)
	}

	li.Match.Record = &LaborRecord{ID: 42}
	if got := li.MatchedRecordID(); got != 42 {
		t.Errorf("MatchedRecordID() = %d, want 42", got)
	}
}
