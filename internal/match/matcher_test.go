package match

import (
	"reflect"
	"sync"
	"testing"

	"github.com/voltfield/ohmwork/internal/labor"
	"github.com/voltfield/ohmwork/internal/model"
)

func testMatcher(t *testing.T) *Matcher {
	t.Helper()
	records := []*model.LaborRecord{
		{ID: 1, Item: "1/2 inch electrical metallic tubing", Unit: model.UnitPerHundred},
		{ID: 2, Item: "3/4 inch electrical metallic tubing connector set screw", Unit: model.UnitEach},
		{ID: 3, Item: "electrical metallic tubing strap one hole", Unit: model.UnitEach},
		{ID: 4, Item: "#12 THHN stranded copper wire", Unit: model.UnitPerThousand},
		{ID: 5, Item: "duplex receptacle 15 amp", Unit: model.UnitEach},
	}
	n := labor.NewNormalizer()
	return New(labor.NewTable(records, n), n)
}

func TestMatchAutoAccept(t *testing.T) {
	m := testMatcher(t)

	// Abbreviated trade shorthand resolves to the canonical record: the
	// query's tokens are a subset of the record's after normalization.
	result := m.Match(`3/4" EMT connector`)

	if result.Status != model.MatchAutoAccepted {
		t.Fatalf("status = %q (confidence %d), want auto-accepted", result.Status, result.Confidence)
	}
	if result.Record == nil || result.Record.ID != 2 {
		t.Fatalf("matched record = %+v, want ID 2", result.Record)
	}
	if result.Confidence < model.AutoAcceptThreshold {
		t.Errorf("confidence = %d, want >= %d", result.Confidence, model.AutoAcceptThreshold)
	}
	if result.Flagged {
		t.Error("auto-accepted match must not be flagged")
	}
}

func TestMatchExactIsPerfect(t *testing.T) {
	m := testMatcher(t)

	result := m.Match("duplex receptacle 15 amp")
	if result.Confidence != 100 {
		t.Errorf("exact match confidence = %d, want 100", result.Confidence)
	}
	if result.Record == nil || result.Record.ID != 5 {
		t.Errorf("matched record = %+v, want ID 5", result.Record)
	}
}

func TestMatchNeedsReview(t *testing.T) {
	m := testMatcher(t)

	// Shares vocabulary with the EMT records without lining up with any
	// single one.
	result := m.Match("emt strap two hole galvanized steel heavy duty zinc plated")

	if result.Status != model.MatchNeedsReview {
		t.Fatalf("status = %q (confidence %d), want needs-review", result.Status, result.Confidence)
	}
	if result.Record == nil {
		t.Fatal("needs-review result must still carry the best record")
	}
	if !result.Flagged {
		t.Error("needs-review match must be flagged")
	}
}

func TestMatchNone(t *testing.T) {
	m := testMatcher(t)

	result := m.Match("hydraulic excavator bucket tooth")

	if result.Status != model.MatchNone {
		t.Fatalf("status = %q (confidence %d), want no match", result.Status, result.Confidence)
	}
	if result.Record != nil {
		t.Errorf("no-match result must carry no record, got %+v", result.Record)
	}
	if !result.Flagged {
		t.Error("no-match result must be flagged")
	}
}

func TestMatchEmptyQuery(t *testing.T) {
	m := testMatcher(t)

	for _, query := range []string{"", "   ", "()[]"} {
		result := m.Match(query)
		if result.Status != model.MatchNone || result.Record != nil || !result.Flagged {
			t.Errorf("Match(%q) = %+v, want flagged no-match", query, result)
		}
	}
}

func TestMatchTieBreaksToLowerID(t *testing.T) {
	records := []*model.LaborRecord{
		{ID: 7, Item: "ground rod clamp", Unit: model.UnitEach},
		{ID: 3, Item: "ground rod clamp", Unit: model.UnitEach},
	}
	n := labor.NewNormalizer()
	m := New(labor.NewTable(records, n), n)

	result := m.Match("ground rod clamp")
	if result.Record == nil || result.Record.ID != 3 {
		t.Errorf("tie should break to the lower record ID, got %+v", result.Record)
	}
}

func TestMatchTieBreaksToShorterItem(t *testing.T) {
	records := []*model.LaborRecord{
		{ID: 1, Item: "ground rod clamp bronze heavy duty", Unit: model.UnitEach},
		{ID: 2, Item: "ground rod clamp", Unit: model.UnitEach},
	}
	n := labor.NewNormalizer()
	m := New(labor.NewTable(records, n), n)

	// Query is a subset of both items, so both token-set scores are 100;
	// the edit-distance leg already favors the shorter item, and the tie
	// rule points the same way.
	result := m.Match("ground rod clamp")
	if result.Record == nil || result.Record.ID != 2 {
		t.Errorf("expected the shorter item to win, got %+v", result.Record)
	}
}

func TestTopN(t *testing.T) {
	m := testMatcher(t)

	candidates := m.TopN("electrical metallic tubing", 3)
	if len(candidates) != 3 {
		t.Fatalf("TopN returned %d candidates, want 3", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[i-1].Score {
			t.Errorf("candidates out of order at %d: %d > %d", i, candidates[i].Score, candidates[i-1].Score)
		}
	}

	if got := m.TopN("electrical", 100); len(got) > 5 {
		t.Errorf("TopN cannot return more candidates than records, got %d", len(got))
	}
}

// Matching must be deterministic under concurrency: a shared matcher
// serving parallel estimate workers has to return identical results for
// identical queries.
func TestMatchDeterministicParallel(t *testing.T) {
	m := testMatcher(t)
	queries := []string{
		`3/4" EMT connector`,
		"emt strap",
		"#12 thhn wire",
		"duplex recep",
		"hydraulic excavator bucket tooth",
	}

	baseline := make([]model.MatchResult, len(queries))
	for i, q := range queries {
		baseline[i] = m.Match(q)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < 50; iter++ {
				for i, q := range queries {
					if got := m.Match(q); !reflect.DeepEqual(got, baseline[i]) {
						errs <- q
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for q := range errs {
		t.Errorf("nondeterministic result for query %q", q)
	}
}
