package match

import (
	"math"
	"sort"
	"strings"

	"github.com/voltfield/ohmwork/internal/labor"
	"github.com/voltfield/ohmwork/internal/model"
)

// Fixed scoring weights. Token-set similarity dominates because electrical
// part descriptions are order-insensitive: "3/4 EMT connector" and
// "connector EMT 3/4" describe the same part.
const (
	tokenSetWeight = 0.70
	editWeight     = 0.30
)

// Matcher scores normalized queries against a labor reference table.
// It is stateless and deterministic: for a fixed table the same query
// always yields the same result, so matchers may be shared across
// goroutines without locking.
type Matcher struct {
	table      *labor.Table
	normalizer *labor.Normalizer
}

// New creates a matcher over the given table. The normalizer must be the
// same one the table was indexed with, or query and record vocabulary
// will disagree.
func New(table *labor.Table, normalizer *labor.Normalizer) *Matcher {
	return &Matcher{table: table, normalizer: normalizer}
}

// Match returns the best match for a raw part description.
//
// Selection contract: the highest-scoring candidate wins; ties break to
// the shorter canonical item description, then to the lower record ID.
// Confidence at or above model.AutoAcceptThreshold is auto-accepted,
// between the thresholds the record is accepted but flagged for review,
// and below model.ReviewThreshold the result carries no record at all.
func (m *Matcher) Match(query string) model.MatchResult {
	candidates := m.rank(query)
	if len(candidates) == 0 {
		return model.MatchResult{Status: model.MatchNone, Flagged: true}
	}

	best := candidates[0]
	status := model.StatusFor(best.Score)
	result := model.MatchResult{
		Confidence: best.Score,
		Status:     status,
		Flagged:    status != model.MatchAutoAccepted,
	}
	if status != model.MatchNone {
		result.Record = best.Record
	}
	return result
}

// TopN returns the n highest-scoring candidates for a query, for search
// displays and manual review pickers.
func (m *Matcher) TopN(query string, n int) []model.MatchCandidate {
	candidates := m.rank(query)
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// rank scores all candidate records for a query and sorts them by the
// documented ordering.
func (m *Matcher) rank(query string) []model.MatchCandidate {
	queryTokens := m.normalizer.Tokens(query)
	if len(queryTokens) == 0 {
		return nil
	}
	queryText := strings.Join(queryTokens, " ")

	// Candidate pruning: only records sharing a token with the query.
	// A query with wholly foreign vocabulary falls back to a full scan.
	ids := m.table.Candidates(queryTokens)
	if len(ids) == 0 {
		ids = make([]int, 0, m.table.Len())
		for _, rec := range m.table.Records() {
			ids = append(ids, rec.ID)
		}
	}

	candidates := make([]model.MatchCandidate, 0, len(ids))
	for _, id := range ids {
		rec := m.table.Get(id)
		if rec == nil {
			continue
		}
		candidates = append(candidates, model.MatchCandidate{
			Record: rec,
			Score:  m.score(queryTokens, queryText, id),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Record.Item) != len(b.Record.Item) {
			return len(a.Record.Item) < len(b.Record.Item)
		}
		return a.Record.ID < b.Record.ID
	})

	return candidates
}

// score combines token-set and edit-distance similarity with the fixed
// weights, rounded half-up onto the 0-100 confidence scale.
func (m *Matcher) score(queryTokens []string, queryText string, id int) int {
	ts := TokenSetRatio(queryTokens, m.table.RecordTokens(id))
	ed := LevenshteinRatio(queryText, m.table.RecordText(id))
	return int(math.Round(tokenSetWeight*float64(ts) + editWeight*float64(ed)))
}
