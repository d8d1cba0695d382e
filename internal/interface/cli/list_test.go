package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 40, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a much longer title that keeps going", 10, "a much ..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestTruncate_Multibyte(t *testing.T) {
	// Cutting must land on rune boundaries, never mid-character.
	in := strings.Repeat("日本語テキスト", 10)
	got := truncate(in, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if gotRunes := utf8.RuneCountInString(got); gotRunes != 10 {
		t.Errorf("rune count = %d, want 10", gotRunes)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string missing ellipsis: %q", got)
	}
}
