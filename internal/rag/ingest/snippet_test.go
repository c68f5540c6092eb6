package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateSnippet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"short string untouched", "hello", 200, "hello"},
		{"exact limit untouched", strings.Repeat("a", 200), 200, strings.Repeat("a", 200)},
		{"ascii cut at limit", strings.Repeat("a", 250), 200, strings.Repeat("a", 200)},
		{"cut lands mid rune", strings.Repeat("a", 199) + "é" + "tail", 200, strings.Repeat("a", 199)},
		{"multibyte heavy", strings.Repeat("é", 150), 200, strings.Repeat("é", 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncateSnippet(tc.input, tc.limit)
			if got != tc.want {
				t.Errorf("truncateSnippet() = %q, want %q", got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateSnippet() produced invalid UTF-8: %q", got)
			}
		})
	}
}
