package model

// Confidence thresholds are fixed contract values: callers may rely on a
// result with confidence at or above AutoAcceptThreshold being accepted
// without review, and on anything below ReviewThreshold carrying no match.
const (
	// AutoAcceptThreshold is the confidence score at or above which a
	// match is accepted without manual review.
	AutoAcceptThreshold = 85
	// ReviewThreshold is the confidence score below which no match is
	// accepted at all.
	ReviewThreshold = 60
)

// MatchStatus indicates how a match result should be treated.
type MatchStatus string

// Match status constants.
const (
	MatchAutoAccepted MatchStatus = "AUTO_ACCEPTED"
	MatchNeedsReview  MatchStatus = "NEEDS_REVIEW"
	MatchNone         MatchStatus = "NO_MATCH"
)

// MatchCandidate pairs a labor record with its similarity score for one
// query. Candidates are ranked by score descending.
type MatchCandidate struct {
	Record *LaborRecord
	Score  int
}

// MatchResult is the outcome of matching one query against the reference
// table. Record is nil when no candidate cleared ReviewThreshold.
type MatchResult struct {
	Record     *LaborRecord
	Status     MatchStatus
	Confidence int
	Flagged    bool
}

// StatusFor maps a confidence score onto a match status.
func StatusFor(confidence int) MatchStatus {
	switch {
	case confidence >= AutoAcceptThreshold:
		return MatchAutoAccepted
	case confidence >= ReviewThreshold:
		return MatchNeedsReview
	default:
		return MatchNone
	}
}
