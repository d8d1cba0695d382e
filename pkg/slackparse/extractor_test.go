package slackparse

import "testing"

func TestMatchReactionWithCount(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		count int
		ok    bool
	}{
		{":thumbsup: 3", "thumbsup", 3, true},
		{"![:joy:](https://emoji.slack-edge.com/T123/joy.png) 2", "joy", 2, true},
		{"👍 4", "👍", 4, true},
		{":thumbsup:", "", 0, false},
		{"just some text 3", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		name, count, ok := matchReactionWithCount(tt.in)
		if ok != tt.ok || name != tt.name || count != tt.count {
			t.Errorf("matchReactionWithCount(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.in, name, count, ok, tt.name, tt.count, tt.ok)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		ok   bool
	}{
		{"3", 3, true},
		{"42", 42, true},
		{"0", 0, true},
		{"", 0, false},
		{"3a", 0, false},
		{"-1", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseCount(tt.in)
		if ok != tt.ok || n != tt.n {
			t.Errorf("parseCount(%q) = (%d, %v), want (%d, %v)", tt.in, n, ok, tt.n, tt.ok)
		}
	}
}

func TestCleanUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alex Mittell", "Alex Mittell"},
		{"Alex MittellAlex Mittell", "Alex Mittell"},
		{"Alex Mittell:", "Alex Mittell"},
		{"  Bob  ", "Bob"},
		{"", UnknownUser},
		{"  ", UnknownUser},
	}
	for _, tt := range tests {
		if got := cleanUsername(tt.in); got != tt.want {
			t.Errorf("cleanUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
