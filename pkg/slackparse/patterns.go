package slackparse

import (
	"regexp"
	"strings"
)

// This file is the single pattern registry. The classifier and the header
// extractor both read from it, so axis scoring and field extraction cannot
// disagree about what a "timestamp" or a "username" looks like.

// Unicode pictograph ranges that show up in Slack display names and
// reaction lines. RE2 character-class body, not a full pattern.
const emojiRanges = `\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{1F1E6}-\x{1F1FF}\x{FE0F}\x{200D}\x{20E3}`

const (
	// clockPat matches H:MM with an optional am/pm marker. Range checks
	// (hour, minute) happen in the normalizer, not the regex.
	clockPat = `\d{1,2}:\d{2}\s*(?:[AaPp]\.?[Mm]\.?)?`
	// namePat is the allow-listed structural shape for display names.
	namePat     = `[A-Za-z][A-Za-z0-9 ._\-]{0,79}`
	monthPat    = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`
	weekdayPat  = `(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`
	emojiTokPat = `:[a-z0-9_+\-]+:`
)

var (
	// Timestamp shapes.
	reBareTime    = regexp.MustCompile(`^\(?(\d{1,2}):(\d{2})\s*([AaPp]\.?[Mm]\.?)?\)?$`)
	reTimeSeconds = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})\s*([AaPp]\.?[Mm]\.?)?$`)
	// Bracket-linked timestamp: visible text is a time/date, URL points at
	// a message archive path.
	reLinkedTime = regexp.MustCompile(`^\[([^\]]+)\]\((https?://[^\s)]*/archives/[^\s)]*)\)$`)
	reAnyLink    = regexp.MustCompile(`^\[([^\]]+)\]\([^\s)]+\)$`)
	reWeekday    = regexp.MustCompile(`(?i)^(` + weekdayPat + `)(?:\s+at\s+(\d{1,2}):(\d{2})\s*([AaPp]\.?[Mm]\.?)?)?$`)
	reMonthDay   = regexp.MustCompile(`(?i)^(` + monthPat + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?(?:\s+at\s+(\d{1,2}):(\d{2})\s*([AaPp]\.?[Mm]\.?)?)?$`)
	reTodayYest  = regexp.MustCompile(`(?i)^(Today|Yesterday)(?:\s+at\s+(\d{1,2}):(\d{2})\s*([AaPp]\.?[Mm]\.?)?)?$`)

	// Date separator shapes: "Tuesday, February 4th 2025" or a line wrapped
	// in --- ... ---.
	reDateSepLine = regexp.MustCompile(`(?i)^(` + weekdayPat + `),?\s+(` + monthPat + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	reDashWrapped = regexp.MustCompile(`^-{3,}\s*(.*?)\s*-{3,}$`)

	// Username shape: allow-listed characters, optionally followed by
	// emoji tokens or pictographs (custom status).
	reUsernameShape = regexp.MustCompile(`^` + namePat + `(?:\s*(?:` + emojiTokPat + `|[` + emojiRanges + `]))*$`)
	reShortWord     = regexp.MustCompile(`^[A-Za-z]{1,3}$`)
	reMediaFile     = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|webp|svg|heic|mp4|mov|webm|avi|pdf)$`)
	reMonthDayAt    = regexp.MustCompile(`(?i)^` + monthPat + `\.?\s+\d{1,2}(?:st|nd|rd|th)?\s+at$`)
	reEmojiOnly     = regexp.MustCompile(`^(?:` + emojiTokPat + `|[` + emojiRanges + `]|\s)+$`)

	// Metadata / noise catalogue.
	reReplyBanner  = regexp.MustCompile(`(?i)^\d+\s+repl(?:y|ies)(?:\s.*)?$`)
	reViewThread   = regexp.MustCompile(`(?i)^(?:last repl.*)?view thread$`)
	reThreadPrefix = regexp.MustCompile(`(?i)^(?:replied to a thread\b.*|thread:?)$`)
	reAlsoSent     = regexp.MustCompile(`(?i)^also sent to the channel\.?$`)
	reDeleted      = regexp.MustCompile(`(?i)^this message was deleted\.?$`)
	reHRule        = regexp.MustCompile(`^(?:-{3,}|_{3,}|\*{3,})$`)
	reFileCount    = regexp.MustCompile(`(?i)^(\d+)\s+files?$`)
	reAddedBy      = regexp.MustCompile(`(?i)^added by\s+\S.*$`)
	reBareNumber   = regexp.MustCompile(`^\d{1,4}$`)
	reEmojiImage   = regexp.MustCompile(`^!\[` + emojiTokPat + `\]\([^)]+\)$`)
	reAvatarImage  = regexp.MustCompile(`^!\[[^\]]*\]\((https?://[^)]*(?:slack-edge|avatar)[^)]*)\)$`)

	// Reaction shapes.
	reEmojiToken      = regexp.MustCompile(`^:([a-z0-9_+\-]+):$`)
	reTokenCount      = regexp.MustCompile(`^:([a-z0-9_+\-]+):\s*(\d+)$`)
	reEmojiImageCount = regexp.MustCompile(`^!\[:([a-z0-9_+\-]+):\]\([^)]*\)\s*(\d+)$`)
	reUnicodeCount    = regexp.MustCompile(`^([` + emojiRanges + `]+)\s*(\d+)$`)

	// In-text tokens resolved through the caller-supplied maps.
	reMention   = regexp.MustCompile(`<@([A-Z0-9]+)>`)
	reEmojiCode = regexp.MustCompile(`:([a-z0-9_+\-]+):`)

	// Cleanup helpers for extracted usernames.
	reEmojiStrip   = regexp.MustCompile(emojiTokPat + `|[` + emojiRanges + `]`)
	reAvatarPrefix = regexp.MustCompile(`^!\[[^\]]*\]\([^)]*\)\s*`)

	// Trailing clock time, used by the doubled-username matcher and the
	// split-header repair.
	reTrailingTime = regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AaPp]\.?[Mm]\.?)?)\s*$`)
)

// Combined user+time shapes. Order matters: the index determines which
// capture maps to username vs timestamp, and a format hint may rotate the
// bracket shape to the front.
var (
	reNameTime       = regexp.MustCompile(`^(` + namePat + `?)\s+(` + clockPat + `)$`)
	reNameLinkedTime = regexp.MustCompile(`^(` + namePat + `?)\s+\[([^\]]+)\]\((https?://[^\s)]+)\)$`)
	reNameAtTime     = regexp.MustCompile(`^(` + namePat + `?)\s+at\s+(` + clockPat + `)$`)
	reNameEmojiTime  = regexp.MustCompile(`^(` + namePat + `?)((?:` + emojiTokPat + `|[` + emojiRanges + `])+)(` + clockPat + `)$`)
	reNameEmojiSpace = regexp.MustCompile(`^(` + namePat + `?)((?:` + emojiTokPat + `|[` + emojiRanges + `])+)\s+(` + clockPat + `)$`)
)

// fillerWords start lines that look name-shaped but are almost always
// link-preview or attachment prose.
var fillerWords = []string{"The", "This", "Google", "Image", "File", "Document"}

func startsWithFiller(text string) bool {
	first, _, _ := strings.Cut(text, " ")
	for _, w := range fillerWords {
		if first == w {
			return true
		}
	}
	return false
}

// isRepeatedWord reports whether text is a single word immediately
// repeated ("PricingPricing"), the shape link-preview titles paste as.
// Doubled display names contain a space in each half and are excluded.
func isRepeatedWord(text string) bool {
	n := len(text)
	if n <= 10 || n%2 != 0 {
		return false
	}
	half := text[:n/2]
	return half == text[n/2:] && !strings.Contains(half, " ")
}

// splitDoubledName collapses "Alex MittellAlex Mittell" to "Alex Mittell".
// Only multi-word halves qualify; single-word doubling is preview noise.
func splitDoubledName(text string) (string, bool) {
	n := len(text)
	if n < 4 || n%2 != 0 {
		return "", false
	}
	half := text[:n/2]
	if half != text[n/2:] || !strings.Contains(strings.TrimSpace(half), " ") {
		return "", false
	}
	return half, true
}

// findDoubledPrefix locates the longest doubled name at the start of text,
// returning the collapsed name and the offset where the doubling ends.
func findDoubledPrefix(text string) (string, int, bool) {
	max := len(text) / 2
	for i := max; i >= 2; i-- {
		if text[:i] == text[i:2*i] && strings.Contains(strings.TrimSpace(text[:i]), " ") {
			return text[:i], 2 * i, true
		}
	}
	return "", 0, false
}

func isEmojiOnly(text string) bool {
	return text != "" && reEmojiOnly.MatchString(text)
}

// isMetadataLine is the fixed noise catalogue for the metadata axis.
func isMetadataLine(text string) bool {
	switch {
	case reReplyBanner.MatchString(text),
		reViewThread.MatchString(text),
		reThreadPrefix.MatchString(text),
		reAlsoSent.MatchString(text),
		reDeleted.MatchString(text),
		reHRule.MatchString(text),
		reFileCount.MatchString(text),
		reAddedBy.MatchString(text),
		reBareNumber.MatchString(text),
		reEmojiImage.MatchString(text),
		reAvatarImage.MatchString(text),
		isEmojiOnly(text):
		return true
	}
	return false
}

// isThreadContinuation covers the banner shapes a block is allowed to
// absorb for later extraction rather than discard.
func isThreadContinuation(text string) bool {
	return reReplyBanner.MatchString(text) ||
		reViewThread.MatchString(text) ||
		reThreadPrefix.MatchString(text) ||
		reAlsoSent.MatchString(text) ||
		reFileCount.MatchString(text) ||
		reAddedBy.MatchString(text)
}

// looksLikeDateFragment guards combined-pattern captures: a "name" that is
// itself a weekday/month/relative-day phrase is a timestamp, not a person.
func looksLikeDateFragment(name string) bool {
	return reWeekday.MatchString(name) ||
		reMonthDay.MatchString(name) ||
		reTodayYest.MatchString(name)
}

// combinedMatch is one attempted user+time extraction.
type combinedMatch struct {
	username  string
	timestamp string
}

type combinedFn func(text string) (combinedMatch, bool)

func matchNameTime(text string) (combinedMatch, bool) {
	if m := reNameTime.FindStringSubmatch(text); m != nil {
		return combinedMatch{m[1], m[2]}, true
	}
	return combinedMatch{}, false
}

func matchNameLinkedTime(text string) (combinedMatch, bool) {
	if m := reNameLinkedTime.FindStringSubmatch(text); m != nil {
		return combinedMatch{m[1], m[2]}, true
	}
	return combinedMatch{}, false
}

func matchNameAtTime(text string) (combinedMatch, bool) {
	if m := reNameAtTime.FindStringSubmatch(text); m != nil {
		return combinedMatch{m[1], m[2]}, true
	}
	return combinedMatch{}, false
}

// matchDoubledNameTime handles the paste artifact where the display name is
// repeated twice with no separator, followed by optional content and a time.
func matchDoubledNameTime(text string) (combinedMatch, bool) {
	tm := reTrailingTime.FindStringSubmatchIndex(text)
	if tm == nil {
		return combinedMatch{}, false
	}
	head := strings.TrimSpace(text[:tm[2]])
	if name, ok := splitDoubledName(head); ok {
		return combinedMatch{name, text[tm[2]:tm[3]]}, true
	}
	if name, _, ok := findDoubledPrefix(head); ok {
		return combinedMatch{name, text[tm[2]:tm[3]]}, true
	}
	return combinedMatch{}, false
}

func matchNameEmojiTime(text string) (combinedMatch, bool) {
	if m := reNameEmojiTime.FindStringSubmatch(text); m != nil {
		return combinedMatch{m[1], m[3]}, true
	}
	return combinedMatch{}, false
}

func matchNameEmojiSpaceTime(text string) (combinedMatch, bool) {
	if m := reNameEmojiSpace.FindStringSubmatch(text); m != nil {
		return combinedMatch{m[1], m[3]}, true
	}
	return combinedMatch{}, false
}

// combinedAttempts returns the combined patterns in attempt order. A
// non-auto hint only rotates the likeliest shape to the front.
func combinedAttempts(hint FormatHint) []combinedFn {
	base := []combinedFn{
		matchNameTime,
		matchNameLinkedTime,
		matchNameAtTime,
		matchDoubledNameTime,
		matchNameEmojiTime,
		matchNameEmojiSpaceTime,
	}
	switch hint {
	case FormatBracket:
		return []combinedFn{
			matchNameLinkedTime,
			matchNameTime,
			matchNameAtTime,
			matchDoubledNameTime,
			matchNameEmojiTime,
			matchNameEmojiSpaceTime,
		}
	case FormatMixed:
		return []combinedFn{
			matchDoubledNameTime,
			matchNameTime,
			matchNameLinkedTime,
			matchNameAtTime,
			matchNameEmojiTime,
			matchNameEmojiSpaceTime,
		}
	default:
		return base
	}
}

// matchCombined attempts each user+time shape in order. Captured names are
// validated against the username axis so prose like "The meeting is at
// 3:30" never produces a header.
func matchCombined(text string, hint FormatHint) (combinedMatch, bool) {
	for _, fn := range combinedAttempts(hint) {
		m, ok := fn(text)
		if !ok {
			continue
		}
		name := strings.TrimSpace(m.username)
		if name == "" || looksLikeDateFragment(name) {
			continue
		}
		if scoreUsernameAxis(name) < 0.3 {
			continue
		}
		return m, true
	}
	return combinedMatch{}, false
}
