package slackparse

import "testing"

func TestScoreLine_UsernameAxis(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Alex Mittell", 0.7},
		{"alice.w", 0.7},
		{"Alex MittellAlex Mittell", 0.8},
		{"Bob", 0.3},
		{"ok", 0.3},
		{":thumbsup:", 0},
		{"screenshot.png", 0},
		{"The meeting notes", 0},
		{"Google Docs", 0},
		{"February 4th at", 0},
		{"PricingPricing", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := scoreUsernameAxis(tt.text)
		if got != tt.want {
			t.Errorf("scoreUsernameAxis(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestScoreLine_TimestampAxis(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"3:13 PM", 0.95},
		{"14:05", 0.95},
		{"3:13:22 PM", 0.95},
		{"[2:45 PM](https://w.slack.com/archives/C123/p1700000000)", 0.9},
		{"Monday at 3:00 PM", 0.8},
		{"February 4th at 3:13 PM", 0.8},
		{"Today at 9:15 AM", 0.8},
		{"Yesterday", 0.8},
		{"hello world", 0},
	}
	for _, tt := range tests {
		got := scoreTimestampAxis(tt.text)
		if got != tt.want {
			t.Errorf("scoreTimestampAxis(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestScoreLine_CombinedAxis(t *testing.T) {
	combined := []string{
		"Alex Mittell 3:13 PM",
		"Alex Mittell [2:45 PM](https://w.slack.com/archives/C123/p1)",
		"Alex at 3:13 PM",
		"Alex MittellAlex Mittell 3:13 PM",
		"Alex Mittell:smile:3:13 PM",
		"Alex Mittell:smile: 3:13 PM",
	}
	for _, text := range combined {
		s := scoreLine(text, FormatAuto)
		if s.Combined != 0.9 {
			t.Errorf("scoreLine(%q).Combined = %v, want 0.9", text, s.Combined)
		}
	}

	// Prose and date fragments must not produce a combined match.
	notCombined := []string{
		"The meeting is at 3:30",
		"February 4th at 3:13 PM",
		"Yesterday at 2:00 PM",
	}
	for _, text := range notCombined {
		s := scoreLine(text, FormatAuto)
		if s.Combined != 0 {
			t.Errorf("scoreLine(%q).Combined = %v, want 0", text, s.Combined)
		}
	}
}

func TestScoreLine_DateSeparatorAxis(t *testing.T) {
	for _, text := range []string{
		"Tuesday, February 4th",
		"Monday, January 6, 2025",
		"--- February 4, 2024 ---",
	} {
		s := scoreLine(text, FormatAuto)
		if s.DateSep != 0.95 {
			t.Errorf("scoreLine(%q).DateSep = %v, want 0.95", text, s.DateSep)
		}
	}
	if s := scoreLine("------", FormatAuto); s.DateSep != 0 {
		t.Errorf("scoreLine(------).DateSep = %v, want 0 (horizontal rule)", s.DateSep)
	}
}

func TestScoreLine_MetadataAxis(t *testing.T) {
	for _, text := range []string{
		"13 replies",
		"View thread",
		"Last reply 2 hours agoView thread",
		"replied to a thread:",
		"also sent to the channel",
		"This message was deleted",
		"---",
		"2 files",
		"Added by Alex",
		"42",
		":wave:",
		"![:wave:](https://emoji.slack-edge.com/T1/wave/abc.png)",
	} {
		s := scoreLine(text, FormatAuto)
		if s.Metadata != 0.9 {
			t.Errorf("scoreLine(%q).Metadata = %v, want 0.9", text, s.Metadata)
		}
	}
}

func TestScoreLine_MultiSignalBonus(t *testing.T) {
	// "Yesterday" scores on both the timestamp axis (0.8) and the username
	// shape (0.7), so the overall confidence gets 0.1 per active signal.
	s := scoreLine("Yesterday", FormatAuto)
	if s.Overall != 1.0 {
		t.Errorf("scoreLine(Yesterday).Overall = %v, want 1.0", s.Overall)
	}

	// A single active signal gets no bonus.
	s = scoreLine("Alex Mittell 3:13 PM", FormatAuto)
	if s.Overall != 0.9 {
		t.Errorf("scoreLine(header).Overall = %v, want 0.9", s.Overall)
	}
}

func TestScoreLine_NeverPanics(t *testing.T) {
	for _, text := range []string{
		"", " ", "\t", "][)(", "::::", "!!![", "\x00weird", "a]b(c)d[e",
	} {
		_ = scoreLine(text, FormatAuto)
	}
}
