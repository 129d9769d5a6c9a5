package scrape

import "testing"

func TestParseAbbreviatedCount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5.1K", 5100},
		{"4.8K", 4800},
		{"12K", 12000},
		{"1.25K", 1250},
		{"1.2345K", 1234},
		{"733", 733},
		{"1,204", 1204},
		{" 55 ", 55},
		{"1.2M", 1},
		{"", 0},
		{"n/a", 0},
		{"K", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAbbreviatedCount(tt.input)
			if got != tt.want {
				t.Errorf("ParseAbbreviatedCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStrippedCount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5.1K", 5},
		{"4.8M", 4},
		{"120K", 120},
		{"1,2M", 12},
		{"9,876", 9876},
		{"42", 42},
		{"", 0},
		{"views", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseStrippedCount(tt.input)
			if got != tt.want {
				t.Errorf("ParseStrippedCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountPoliciesDiffer(t *testing.T) {
	if a, b := ParseAbbreviatedCount("5.1K"), ParseStrippedCount("5.1K"); a == b {
		t.Errorf("policies agree on 5.1K (%d), want distinct results", a)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"123abc", 123},
		{"-7", -7},
		{"+8", 8},
		{"5.1000", 5},
		{"99999999999999999999", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		if got := parseLeadingInt(tt.input); got != tt.want {
			t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
