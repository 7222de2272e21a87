// Package quantity extracts numeric quantities and unit words from raw
// part lines.
package quantity

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// number matches an integer or decimal with optional comma separators,
// e.g. 10, 2.5, 2,500.
const number = `([\d,]+(?:\.\d+)?)`

var (
	// "(5)" or "[5]", optionally followed by a unit word.
	parenPattern = regexp.MustCompile(`^[(\[]\s*` + number + `\s*[)\]]\s*([A-Za-z]+)?`)
	// "x10" / "X 10" multiplier notation.
	leadingXPattern = regexp.MustCompile(`^[xX]\s*` + number + `\b`)
	// "10x" multiplier notation.
	trailingXPattern = regexp.MustCompile(`^` + number + `\s*[xX](?:\s|$)`)
	// Leading number, optionally followed by a unit word: "240 feet", "10".
	// A trailing [/\d] guard keeps sizes like "3/4" from reading as 3.
	leadingPattern = regexp.MustCompile(`^` + number + `(?:\s+([A-Za-z]+)\b)?(?:\s|$)`)
	// Trailing bare number: "EMT connector 10".
	trailingPattern = regexp.MustCompile(`(?:^|\s)` + number + `\s*$`)
)

// knownUnits are unit words recognized after a quantity. Anything else is
// treated as part of the description, not a unit.
var knownUnits = map[string]string{
	"feet": "feet", "ft": "feet", "foot": "feet",
	"ea": "each", "each": "each",
	"box": "box", "boxes": "boxes",
	"lot": "lot", "roll": "roll", "rolls": "rolls",
	"pc": "pieces", "pcs": "pieces", "piece": "pieces", "pieces": "pieces",
}

// Result is one quantity parse outcome. When Parsed is false the quantity
// defaulted to 1 and the caller should flag the line for review.
type Result struct {
	Unit     string
	Quantity decimal.Decimal
	Parsed   bool
}

// Parse extracts a positive quantity and best-effort unit from a raw line.
// An absent unit is valid; an unparsable quantity defaults to 1 with
// Parsed set to false, never a silent wrong count.
func Parse(raw string) Result {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback()
	}

	if m := parenPattern.FindStringSubmatch(s); m != nil {
		return build(m[1], m[2])
	}
	if m := leadingXPattern.FindStringSubmatch(s); m != nil {
		return build(m[1], "")
	}
	if m := trailingXPattern.FindStringSubmatch(s); m != nil {
		return build(m[1], "")
	}
	if m := leadingPattern.FindStringSubmatch(s); m != nil && !isFractionPrefix(s, m[1]) {
		return build(m[1], m[2])
	}
	if m := trailingPattern.FindStringSubmatch(s); m != nil {
		return build(m[1], "")
	}
	return fallback()
}

// build converts a matched numeric string and candidate unit word into a
// Result, falling back when the number is malformed or non-positive.
func build(num, unitWord string) Result {
	num = strings.ReplaceAll(num, ",", "")
	qty, err := decimal.NewFromString(num)
	if err != nil || !qty.IsPositive() {
		return fallback()
	}

	unit := ""
	if unitWord != "" {
		if canonical, ok := knownUnits[strings.ToLower(unitWord)]; ok {
			unit = canonical
		}
	}
	return Result{Quantity: qty, Unit: unit, Parsed: true}
}

// isFractionPrefix reports whether the matched number is really the start
// of a size fraction like "3/4", which is a dimension, not a count.
func isFractionPrefix(s, num string) bool {
	rest := s[len(num):]
	return strings.HasPrefix(rest, "/")
}

func fallback() Result {
	return Result{Quantity: decimal.NewFromInt(1), Parsed: false}
}
