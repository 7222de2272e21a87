package labor

import (
	"reflect"
	"testing"

	"github.com/voltfield/ohmwork/internal/model"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	records := []*model.LaborRecord{
		{ID: 1, Section: "Conduit", Category: "EMT", Item: "1/2 inch electrical metallic tubing", Unit: model.UnitPerHundred},
		{ID: 2, Section: "Conduit", Category: "EMT Fittings", Item: "3/4 inch electrical metallic tubing connector", Unit: model.UnitEach},
		{ID: 3, Section: "Wire", Category: "Copper", Item: "#12 THHN stranded copper wire", Unit: model.UnitPerThousand},
	}
	return NewTable(records, NewNormalizer())
}

func TestTableLookups(t *testing.T) {
	table := testTable(t)

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if rec := table.Get(2); rec == nil || rec.Category != "EMT Fittings" {
		t.Errorf("Get(2) = %+v", rec)
	}
	if rec := table.Get(99); rec != nil {
		t.Errorf("Get(99) should be nil, got %+v", rec)
	}
}

func TestTableRecordTokens(t *testing.T) {
	table := testTable(t)

	tokens := table.RecordTokens(3)
	if len(tokens) == 0 {
		t.Fatal("expected precomputed tokens for record 3")
	}
	found := false
	for _, tok := range tokens {
		if tok == "#12" {
			found = true
		}
	}
	if !found {
		t.Errorf("wire gauge token missing from %v", tokens)
	}
}

func TestTableCandidates(t *testing.T) {
	table := testTable(t)
	n := NewNormalizer()

	// "connector" only appears in record 2; "tubing" in records 1 and 2.
	ids := table.Candidates(n.Tokens("emt connector"))
	if !reflect.DeepEqual(ids, []int{1, 2}) {
		t.Errorf("Candidates = %v, want [1 2]", ids)
	}

	// Foreign vocabulary prunes to nothing; the matcher falls back to a
	// full scan in that case.
	if ids := table.Candidates(n.Tokens("plumbing fixture")); len(ids) != 0 {
		t.Errorf("Candidates for foreign query = %v, want empty", ids)
	}
}

func TestTableBrowse(t *testing.T) {
	table := testTable(t)

	if got := table.Sections(); !reflect.DeepEqual(got, []string{"Conduit", "Wire"}) {
		t.Errorf("Sections() = %v", got)
	}
	if got := table.Categories("Conduit"); !reflect.DeepEqual(got, []string{"EMT", "EMT Fittings"}) {
		t.Errorf("Categories(Conduit) = %v", got)
	}
	if got := table.Categories("Plumbing"); len(got) != 0 {
		t.Errorf("Categories(Plumbing) = %v, want empty", got)
	}

	items := table.Items("Conduit", "EMT")
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("Items(Conduit, EMT) = %v", items)
	}
}
