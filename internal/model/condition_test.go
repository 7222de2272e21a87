package model

import (
	"testing"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Condition
		wantErr bool
	}{
		{name: "canonical easy", input: "Easy", want: ConditionEasy},
		{name: "lowercase average", input: "average", want: ConditionAverage},
		{name: "canonical difficult", input: "Difficult", want: ConditionDifficult},
		{name: "lowercase remodel", input: "remodel", want: ConditionRemodel},
		{name: "canonical old work", input: "Old_Work", want: ConditionOldWork},
		{name: "spaced old work", input: "old work", want: ConditionOldWork},
		{name: "camel old work", input: "OldWork", want: ConditionOldWork},
		{name: "unknown condition", input: "extreme", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCondition(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCondition(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCondition(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCondition(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConditionValid(t *testing.T) {
	for _, c := range AllConditions() {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Condition("Hard").Valid() {
		t.Error("expected unknown condition to be invalid")
	}
	if Condition("").Valid() {
		t.Error("expected empty condition to be invalid")
	}
}

func TestUnitOfMeasureDivisor(t *testing.T) {
	tests := []struct {
		unit UnitOfMeasure
		want int64
	}{
		{UnitEach, 1},
		{UnitPerHundred, 100},
		{UnitPerThousand, 1000},
		{UnitOfMeasure(""), 1},
		{UnitOfMeasure("X"), 1},
	}
	for _, tt := range tests {
		if got := tt.unit.Divisor(); got != tt.want {
			t.Errorf("Divisor(%q) = %d, want %d", tt.unit, got, tt.want)
		}
	}
}
