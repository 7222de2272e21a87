package labor

import (
	"sort"
	"strings"

	"github.com/voltfield/ohmwork/internal/model"
)

// Table is the read-only, fully in-memory labor-unit reference table. It is
// built once at startup and may be shared freely across concurrent
// matching operations; nothing mutates it after construction.
type Table struct {
	byID       map[int]*model.LaborRecord
	tokenIndex map[string][]int
	tokens     map[int][]string
	normalized map[int]string
	records    []*model.LaborRecord
}

// NewTable indexes the given records. Token lists and normalized text are
// precomputed per record so scoring never re-normalizes table entries.
// Production code gets a table from a Loader; this constructor exists for
// callers assembling small tables directly.
func NewTable(records []*model.LaborRecord, n *Normalizer) *Table {
	t := &Table{
		records:    records,
		byID:       make(map[int]*model.LaborRecord, len(records)),
		tokenIndex: make(map[string][]int),
		tokens:     make(map[int][]string, len(records)),
		normalized: make(map[int]string, len(records)),
	}

	for _, rec := range records {
		t.byID[rec.ID] = rec

		combined := strings.Join([]string{rec.Section, rec.Category, rec.Item}, " ")
		toks := n.Tokens(combined)
		t.tokens[rec.ID] = toks
		t.normalized[rec.ID] = strings.Join(toks, " ")

		seen := make(map[string]struct{}, len(toks))
		for _, tok := range toks {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			t.tokenIndex[tok] = append(t.tokenIndex[tok], rec.ID)
		}
	}

	return t
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns all records in load order. Callers must not modify them.
func (t *Table) Records() []*model.LaborRecord {
	return t.records
}

// Get returns the record with the given identifier, or nil.
func (t *Table) Get(id int) *model.LaborRecord {
	return t.byID[id]
}

// RecordTokens returns the precomputed normalized tokens for a record.
func (t *Table) RecordTokens(id int) []string {
	return t.tokens[id]
}

// RecordText returns the precomputed normalized combined text for a record.
func (t *Table) RecordText(id int) string {
	return t.normalized[id]
}

// Candidates returns the IDs of records sharing at least one token with
// the query, for candidate pruning. An empty result means the caller
// should fall back to scanning the full table.
func (t *Table) Candidates(queryTokens []string) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, tok := range queryTokens {
		for _, id := range t.tokenIndex[tok] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Sections returns the distinct section labels in the table, sorted.
func (t *Table) Sections() []string {
	return t.distinct(func(r *model.LaborRecord) (string, bool) {
		return r.Section, true
	})
}

// Categories returns the distinct categories within a section, sorted.
func (t *Table) Categories(section string) []string {
	return t.distinct(func(r *model.LaborRecord) (string, bool) {
		return r.Category, r.Section == section
	})
}

// Items returns the records within a section and category, in load order.
func (t *Table) Items(section, category string) []*model.LaborRecord {
	var out []*model.LaborRecord
	for _, rec := range t.records {
		if rec.Section == section && rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

func (t *Table) distinct(pick func(*model.LaborRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range t.records {
		v, ok := pick(rec)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
