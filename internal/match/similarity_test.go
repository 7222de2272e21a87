package match

import "testing"

func TestLevenshteinRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "emt connector", b: "emt connector", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "emt", b: "", want: 0},
		{name: "single substitution", a: "connector", b: "konnector", want: 89},
		{name: "single deletion", a: "strap", b: "trap", want: 80},
		{name: "disjoint", a: "ab", b: "xy", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevenshteinRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("LevenshteinRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Similarity is symmetric
			if got := LevenshteinRatio(tt.b, tt.a); got != tt.want {
				t.Errorf("LevenshteinRatio(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want int
	}{
		{
			name: "identical sets",
			a:    []string{"3/4", "emt", "connector"},
			b:    []string{"3/4", "emt", "connector"},
			want: 100,
		},
		{
			name: "order independent",
			a:    []string{"3/4", "emt", "connector"},
			b:    []string{"connector", "emt", "3/4"},
			want: 100,
		},
		{
			name: "subset scores full marks",
			a:    []string{"emt", "connector"},
			b:    []string{"3/4", "emt", "connector", "set", "screw"},
			want: 100,
		},
		{
			name: "duplicates collapse",
			a:    []string{"emt", "emt", "connector"},
			b:    []string{"connector", "emt"},
			want: 100,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 100,
		},
		{
			name: "one empty",
			a:    []string{"emt"},
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSetRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSetRatio(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatioPartialOverlap(t *testing.T) {
	a := []string{"electrical", "metallic", "tubing", "strap"}
	b := []string{"electrical", "metallic", "tubing", "connector", "set", "screw"}

	got := TokenSetRatio(a, b)
	if got <= 50 || got >= 100 {
		t.Errorf("partial overlap should land strictly between 50 and 100, got %d", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
