package model

import "fmt"

// LaborRecord is one canonical entry from the labor-unit reference table.
// Records are immutable after load; the matcher and calculator only ever
// hold references to them.
type LaborRecord struct {
	Hours    map[Condition]float64
	Section  string
	Category string
	Item     string
	Unit     UnitOfMeasure
	ID       int
}

// HoursFor returns the labor-hour value for a condition. The second return
// is false when the reference table has no value for that condition.
func (r *LaborRecord) HoursFor(c Condition) (float64, bool) {
	v, ok := r.Hours[c]
	return v, ok
}

// Display returns the human-readable path for this record, matching how
// the reference manual organizes entries.
func (r *LaborRecord) Display() string {
	return fmt.Sprintf("%s > %s > %s", r.Section, r.Category, r.Item)
}
