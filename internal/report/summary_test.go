package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, reportFixture()); err != nil {
		t.Fatalf("WriteSummary() error: %v", err)
	}
	out := buf.String()

	wantFragments := []string{
		"Estimate:  warehouse lighting",
		"Total Labor Hours:          8.75 hrs",
		"Labor Rate:           $   175.00/hr",
		"Total Labor Cost:     $  1531.25",
		"Total Material Cost:  $    27.40",
		"Labor + Material:     $  1558.65",
		"Auto-accepted:           1 parts",
		"Needs review:            1 parts",
		"No match:                1 parts",
		"Action items:            2 parts",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	// Action items reference 1-based line numbers in line order
	actionSection := out[strings.Index(out, "ACTION ITEMS"):]
	strapIdx := strings.Index(actionSection, "2. emt strap")
	shimIdx := strings.Index(actionSection, "3. mystery gadget shim")
	if strapIdx < 0 || shimIdx < 0 || shimIdx < strapIdx {
		t.Errorf("action items missing or out of order:\n%s", actionSection)
	}
	if strings.Contains(actionSection[:shimIdx], "duplex") {
		t.Error("clean line listed as an action item")
	}
}

func TestWriteSummaryNoActionItems(t *testing.T) {
	est := reportFixture()
	est.Lines = est.Lines[:1]

	var buf bytes.Buffer
	if err := WriteSummary(&buf, est); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "ACTION ITEMS") {
		t.Error("clean estimate renders an action item section")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a long part description here", 10); got != "a long par" {
		t.Errorf("truncate() = %q", got)
	}
}
