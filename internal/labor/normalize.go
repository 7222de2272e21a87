// Package labor loads the labor-unit reference table and normalizes part
// descriptions for matching against it.
package labor

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes free-text part descriptions. Normalization is a
// pure function of its rule set: the same input always yields the same
// output, and normalizing an already-normalized string is a no-op.
type Normalizer struct {
	abbreviations map[string]string
	sizes         map[string]string
}

// NewNormalizer creates a normalizer with the default electrical-trade
// rule set. Use WithRules to override from an external file.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		abbreviations: defaultAbbreviations(),
		sizes:         defaultSizeAliases(),
	}
}

// Normalize canonicalizes a description into a single normalized string.
func (n *Normalizer) Normalize(s string) string {
	return strings.Join(n.Tokens(s), " ")
}

// Tokens canonicalizes a description and returns its token sequence.
// Steps run in fixed order: case-fold, strip punctuation (size fractions,
// decimals and wire gauges survive), expand size aliases, expand
// abbreviations, collapse whitespace.
func (n *Normalizer) Tokens(s string) []string {
	s = strings.ToLower(s)
	// Inch marks carry meaning in this trade: 3/4" is a size.
	s = strings.ReplaceAll(s, `"`, " inch ")
	s = strings.ReplaceAll(s, `''`, " inch ")
	s = strings.ReplaceAll(s, "'", " ")
	s = stripPunctuation(s)

	raw := strings.Fields(s)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if alias, ok := n.sizes[tok]; ok {
			tok = alias
		}
		if exp, ok := n.abbreviations[tok]; ok {
			tok = exp
		}
		// Aliases and expansions may be multi-word.
		tokens = append(tokens, strings.Fields(tok)...)
	}
	return tokens
}

// stripPunctuation replaces punctuation with spaces, keeping characters
// that are structural in part descriptions: '/' between digits (fractions
// like 3/4), '.' between digits (decimal sizes), and '#' before a digit
// (wire gauges like #10).
func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes))
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '/' && digitAt(runes, i-1) && digitAt(runes, i+1):
			b.WriteRune(r)
		case r == '.' && digitAt(runes, i+1):
			// Keeps both 0.75 and bare .75 intact.
			b.WriteRune(r)
		case r == '#' && digitAt(runes, i+1):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func digitAt(runes []rune, i int) bool {
	return i >= 0 && i < len(runes) && unicode.IsDigit(runes[i])
}
