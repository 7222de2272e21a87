package quantity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantQty    string
		wantUnit   string
		wantParsed bool
	}{
		{name: "bare integer", input: "10", wantQty: "10", wantParsed: true},
		{name: "decimal quantity", input: "2.5", wantQty: "2.5", wantParsed: true},
		{name: "comma separated", input: "2,500", wantQty: "2500", wantParsed: true},
		{name: "leading with unit", input: "240 feet", wantQty: "240", wantUnit: "feet", wantParsed: true},
		{name: "unit alias folds", input: "240 ft", wantQty: "240", wantUnit: "feet", wantParsed: true},
		{name: "each alias", input: "12 ea", wantQty: "12", wantUnit: "each", wantParsed: true},
		{name: "parenthesized", input: "(5) boxes", wantQty: "5", wantUnit: "boxes", wantParsed: true},
		{name: "bracketed", input: "[3] rolls", wantQty: "3", wantUnit: "rolls", wantParsed: true},
		{name: "multiplier prefix", input: "x10", wantQty: "10", wantParsed: true},
		{name: "multiplier suffix", input: "10x", wantQty: "10", wantParsed: true},
		{name: "trailing number", input: "emt connector 25", wantQty: "25", wantParsed: true},
		{name: "unknown unit word ignored", input: "10 widgets", wantQty: "10", wantParsed: true},
		{name: "pieces alias", input: "8 pcs", wantQty: "8", wantUnit: "pieces", wantParsed: true},
		{name: "empty defaults to one", input: "", wantQty: "1", wantParsed: false},
		{name: "whitespace only", input: "   ", wantQty: "1", wantParsed: false},
		{name: "no number", input: "a few", wantQty: "1", wantParsed: false},
		{name: "zero is not a count", input: "0", wantQty: "1", wantParsed: false},
		{name: "size fraction is not a count", input: "3/4 emt", wantQty: "1", wantParsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)

			want, err := decimal.NewFromString(tt.wantQty)
			if err != nil {
				t.Fatalf("bad test fixture %q: %v", tt.wantQty, err)
			}
			if !got.Quantity.Equal(want) {
				t.Errorf("Parse(%q).Quantity = %s, want %s", tt.input, got.Quantity, want)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("Parse(%q).Unit = %q, want %q", tt.input, got.Unit, tt.wantUnit)
			}
			if got.Parsed != tt.wantParsed {
				t.Errorf("Parse(%q).Parsed = %v, want %v", tt.input, got.Parsed, tt.wantParsed)
			}
		})
	}
}
