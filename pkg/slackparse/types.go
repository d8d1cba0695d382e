package slackparse

import "time"

// UnknownUser is the username assigned to messages whose header could not
// be attributed to anyone.
const UnknownUser = "Unknown User"

// FormatHint biases which header layout the parser tries first. It never
// disables any pattern; FormatAuto is fully format-agnostic.
type FormatHint int

const (
	FormatAuto FormatHint = iota
	FormatStandard
	FormatBracket
	FormatMixed
)

// ParseFormatHint maps a config/flag string to a FormatHint. Unrecognized
// values fall back to FormatAuto.
func ParseFormatHint(s string) FormatHint {
	switch s {
	case "standard":
		return FormatStandard
	case "bracket":
		return FormatBracket
	case "mixed":
		return FormatMixed
	default:
		return FormatAuto
	}
}

func (h FormatHint) String() string {
	switch h {
	case FormatStandard:
		return "standard"
	case FormatBracket:
		return "bracket"
	case FormatMixed:
		return "mixed"
	default:
		return "auto"
	}
}

// Options configures a single Parse call. The zero value is valid.
type Options struct {
	// UserMap resolves <@U...> mention tokens to display names. Missing
	// keys leave the token untouched.
	UserMap map[string]string
	// EmojiMap resolves :code: tokens to glyphs. Missing keys leave the
	// token untouched.
	EmojiMap map[string]string
	// Hint biases header pattern ordering for a known paste layout.
	Hint FormatHint
	// Debug collects per-line diagnostic strings (see ParseWithTrace).
	Debug bool
	// Now anchors relative timestamps ("Today at ...", bare times with no
	// date context). Zero means time.Now().
	Now time.Time
}

// Reaction is one emoji reaction with its count. Count is always a
// successfully parsed non-negative integer.
type Reaction struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Message is the final output record for one attributed message.
type Message struct {
	Username string `json:"username"`
	// Timestamp is RFC3339 when normalization succeeded, otherwise the raw
	// header string. Empty when the header carried no timestamp at all.
	Timestamp  string     `json:"timestamp,omitempty"`
	Text       string     `json:"text"`
	Avatar     string     `json:"avatar,omitempty"`
	Reactions  []Reaction `json:"reactions,omitempty"`
	ThreadInfo string     `json:"thread_info,omitempty"`
}

// PatternScore is the per-line classification result: five independent
// confidences in [0,1] plus a derived overall confidence.
type PatternScore struct {
	Username  float64
	Timestamp float64
	Combined  float64
	DateSep   float64
	Metadata  float64
	Overall   float64
}

// line is one raw input line plus its trimmed form.
type line struct {
	index int
	raw   string
	text  string
}

// messageBlock is the mutable working unit during segmentation. All three
// passes may revise it; empty blocks are dropped at materialization.
type messageBlock struct {
	start, end int
	username   string
	timestamp  string // raw as captured from the header
	avatar     string
	body       []string
	reactions  []Reaction
	threadInfo string
	confidence float64
}
