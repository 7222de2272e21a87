// Package match implements fuzzy matching of normalized part descriptions
// against the labor-unit reference table.
package match

import (
	"sort"
	"strings"
)

// LevenshteinRatio returns an edit-distance-based similarity between two
// strings on a 0-100 scale: 100 means identical, 0 means nothing in common.
func LevenshteinRatio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	ar, br := []rune(a), []rune(b)
	longest := len(ar)
	if len(br) > longest {
		longest = len(br)
	}
	dist := levenshtein(ar, br)
	return int(float64(longest-dist)/float64(longest)*100 + 0.5)
}

// TokenSetRatio returns an order-independent similarity between two token
// sequences on a 0-100 scale. It compares the shared-token core against
// each side's full token set, so "3/4 emt connector" and "connector emt
// 3/4" score 100. One side being a subset of the other also scores 100.
func TokenSetRatio(a, b []string) int {
	setA := uniqueSorted(a)
	setB := uniqueSorted(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 100
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	inter, onlyA, onlyB := partition(setA, setB)

	core := strings.Join(inter, " ")
	full1 := joinNonEmpty(core, strings.Join(onlyA, " "))
	full2 := joinNonEmpty(core, strings.Join(onlyB, " "))

	best := LevenshteinRatio(core, full1)
	if s := LevenshteinRatio(core, full2); s > best {
		best = s
	}
	if s := LevenshteinRatio(full1, full2); s > best {
		best = s
	}
	return best
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range a {
		curr[0] = i + 1
		for j, cb := range b {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = minInt(curr[j]+1, prev[j+1]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func uniqueSorted(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// partition splits two sorted unique token sets into intersection and
// per-side remainders.
func partition(a, b []string) (inter, onlyA, onlyB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	inInter := make(map[string]struct{})
	for _, t := range a {
		if _, ok := inB[t]; ok {
			inter = append(inter, t)
			inInter[t] = struct{}{}
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range b {
		if _, ok := inInter[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	return inter, onlyA, onlyB
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
