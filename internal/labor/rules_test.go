package labor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWithRules(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `abbreviations:
  pvc: polyvinyl conduit
  emt: thinwall conduit
sizes:
  "2.25": 2 1/4
`
	if err := os.WriteFile(rulesPath, []byte(rules), 0600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	base := NewNormalizer()
	n, err := base.WithRules(rulesPath)
	if err != nil {
		t.Fatalf("WithRules() error: %v", err)
	}

	// New entry
	if got := n.Normalize("pvc elbow"); got != "polyvinyl conduit elbow" {
		t.Errorf("added abbreviation not applied: %q", got)
	}
	// Override beats the default
	if got := n.Normalize("emt strap"); got != "thinwall conduit strap" {
		t.Errorf("overridden abbreviation not applied: %q", got)
	}
	// Untouched defaults survive the merge
	if got := n.Normalize("imc strap"); got != "intermediate metal conduit strap" {
		t.Errorf("default abbreviation lost after merge: %q", got)
	}
	if got := n.Normalize("2.25 nipple"); got != "2 1/4 nipple" {
		t.Errorf("added size alias not applied: %q", got)
	}

	// The base normalizer is untouched
	if got := base.Normalize("emt strap"); got != "electrical metallic tubing strap" {
		t.Errorf("WithRules mutated the receiver: %q", got)
	}
}

func TestWithRulesMissingFile(t *testing.T) {
	if _, err := NewNormalizer().WithRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestWithRulesMalformedFile(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("abbreviations: [not, a, map]"), 0600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	if _, err := NewNormalizer().WithRules(rulesPath); err == nil {
		t.Error("expected error for malformed rules file")
	}
}
