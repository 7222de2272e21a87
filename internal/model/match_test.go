package model

import "testing"

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		want       MatchStatus
		confidence int
	}{
		{name: "perfect score", confidence: 100, want: MatchAutoAccepted},
		{name: "at auto-accept threshold", confidence: AutoAcceptThreshold, want: MatchAutoAccepted},
		{name: "just below auto-accept", confidence: AutoAcceptThreshold - 1, want: MatchNeedsReview},
		{name: "at review threshold", confidence: ReviewThreshold, want: MatchNeedsReview},
		{name: "just below review threshold", confidence: ReviewThreshold - 1, want: MatchNone},
		{name: "zero", confidence: 0, want: MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.confidence); got != tt.want {
				t.Errorf("StatusFor(%d) = %q, want %q", tt.confidence, got, tt.want)
			}
		})
	}
}
