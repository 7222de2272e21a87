// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Condition represents the working condition a labor-hour value applies to.
type Condition string

// Working condition constants. The string values match the reference table
// column headers.
const (
	ConditionEasy      Condition = "Easy"
	ConditionAverage   Condition = "Average"
	ConditionDifficult Condition = "Difficult"
	ConditionRemodel   Condition = "Remodel"
	ConditionOldWork   Condition = "Old_Work"
)

// AllConditions lists every valid working condition in reference table
// column order.
func AllConditions() []Condition {
	return []Condition{
		ConditionEasy,
		ConditionAverage,
		ConditionDifficult,
		ConditionRemodel,
		ConditionOldWork,
	}
}

// Valid reports whether the condition is one of the five known values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionEasy, ConditionAverage, ConditionDifficult, ConditionRemodel, ConditionOldWork:
		return true
	}
	return false
}

// ParseCondition converts user input into a Condition. It accepts the
// canonical column-header form plus common spellings like "old work".
func ParseCondition(s string) (Condition, error) {
	switch s {
	case "Easy", "easy":
		return ConditionEasy, nil
	case "Average", "average":
		return ConditionAverage, nil
	case "Difficult", "difficult":
		return ConditionDifficult, nil
	case "Remodel", "remodel":
		return ConditionRemodel, nil
	case "Old_Work", "old_work", "Old Work", "old work", "oldwork", "OldWork":
		return ConditionOldWork, nil
	}
	return "", fmt.Errorf("unknown working condition %q", s)
}

// UnitOfMeasure is the per-unit basis a labor-hour value is expressed in.
type UnitOfMeasure string

// Unit of measure constants from the reference table's PER column.
const (
	// UnitEach means the labor value covers one unit.
	UnitEach UnitOfMeasure = "E"
	// UnitPerHundred means the labor value covers one hundred units.
	UnitPerHundred UnitOfMeasure = "C"
	// UnitPerThousand means the labor value covers one thousand units.
	UnitPerThousand UnitOfMeasure = "M"
)

// Divisor returns the quantity divisor implied by the unit of measure.
// Unknown units behave like each.
func (u UnitOfMeasure) Divisor() int64 {
	switch u {
	case UnitPerHundred:
		return 100
	case UnitPerThousand:
		return 1000
	default:
		return 1
	}
}
