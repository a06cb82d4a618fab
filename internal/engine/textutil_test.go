package engine

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{75, "1:15"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{7325.8, "2:02:05"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTimestamp(tt.seconds); got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSummaryTargetWords(t *testing.T) {
	tests := []struct {
		source int
		want   int
	}{
		{50, 40},   // floor
		{100, 40},  // 30 clamps up
		{150, 45},
		{200, 60},
		{300, 70},  // cap
		{1000, 70}, // cap
	}
	for _, tt := range tests {
		if got := summaryTargetWords(tt.source); got != tt.want {
			t.Errorf("summaryTargetWords(%d) = %d, want %d", tt.source, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags stripped", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"no tags", "plain text", "plain text"},
		{"whitespace trimmed", "  <p>padded</p>  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHTML(tt.in); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstWords(t *testing.T) {
	if got := firstWords("one two three four", 3); got != "one two three" {
		t.Errorf("got %q", got)
	}
	if got := firstWords("one two", 3); got != "one two" {
		t.Errorf("got %q", got)
	}
	if got := firstWords("", 3); got != "" {
		t.Errorf("got %q", got)
	}
}
