package slackparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// calendarLayouts are the strict formats tried first, before any of the
// Slack-specific relative shapes.
var calendarLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"01/02/2006 3:04 PM",
	"01/02/2006",
}

// newWhenParser builds a fresh natural-language parser per use; sharing
// one across concurrent Parse calls would be shared mutable state.
func newWhenParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// normalizeTimestamp resolves a raw timestamp string to an absolute
// instant. ctxDate (zero when absent) anchors date-less forms; now anchors
// relative forms. Never fails hard: ok=false means the caller keeps the
// raw string.
func normalizeTimestamp(raw string, ctxDate, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	base := now
	if !ctxDate.IsZero() {
		base = ctxDate
	}

	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	if m := reTodayYest.FindStringSubmatch(raw); m != nil {
		day := now
		if strings.EqualFold(m[1], "yesterday") {
			day = now.AddDate(0, 0, -1)
		}
		return atClock(day, m[2], m[3], m[4])
	}

	if m := reWeekday.FindStringSubmatch(raw); m != nil {
		day, ok := lastWeekday(now, m[1])
		if !ok {
			return time.Time{}, false
		}
		return atClock(day, m[2], m[3], m[4])
	}

	if m := reBareTime.FindStringSubmatch(raw); m != nil {
		return atClock(base, m[1], m[2], m[3])
	}

	if m := reMonthDay.FindStringSubmatch(raw); m != nil {
		year := base.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		day, ok := buildDate(year, m[1], m[2], base.Location())
		if !ok {
			return time.Time{}, false
		}
		if m[4] == "" {
			return day, true
		}
		return atClock(day, m[4], m[5], m[6])
	}

	// Bracket-linked wrapper: recurse on the visible text.
	if m := reAnyLink.FindStringSubmatch(raw); m != nil {
		return normalizeTimestamp(m[1], ctxDate, now)
	}

	if m := reTimeSeconds.FindStringSubmatch(raw); m != nil {
		h, min, ok := clockParts(m[1], m[2], m[4])
		if !ok {
			return time.Time{}, false
		}
		sec, err := strconv.Atoi(m[3])
		if err != nil || sec < 0 || sec > 59 {
			return time.Time{}, false
		}
		return time.Date(base.Year(), base.Month(), base.Day(), h, min, sec, 0, base.Location()), true
	}

	// Last resort: natural-language parse. Only accepted when the whole
	// string is recognized, so junk like "sometime later" stays raw.
	if r, err := newWhenParser().Parse(raw, base); err == nil && r != nil {
		if r.Index == 0 && len(r.Text) == len(raw) {
			return r.Time, true
		}
	}

	return time.Time{}, false
}

// ParseDate parses a date-only string such as "Feb 29, 2024", rejecting
// calendar rollovers ("Feb 30") that naive date arithmetic would silently
// accept.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	m := reMonthDay.FindStringSubmatch(s)
	if m == nil || m[3] == "" || m[4] != "" {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	return buildDate(year, m[1], m[2], time.UTC)
}

// parseSeparatorDate extracts the date from a date-separator line, either
// "Tuesday, February 4th" or a --- wrapped variant.
func parseSeparatorDate(text string, now time.Time) (time.Time, bool) {
	if m := reDashWrapped.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if m := reDateSepLine.FindStringSubmatch(text); m != nil {
		year := now.Year()
		if m[4] != "" {
			year, _ = strconv.Atoi(m[4])
		}
		return buildDate(year, m[2], m[3], now.Location())
	}
	if m := reMonthDay.FindStringSubmatch(text); m != nil && m[4] == "" {
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return buildDate(year, m[1], m[2], now.Location())
	}
	return time.Time{}, false
}

// buildDate constructs a date from name-month components and validates it
// by comparing the result back, so "Feb 30" does not roll into March.
func buildDate(year int, monthName, dayStr string, loc *time.Location) (time.Time, bool) {
	month, ok := monthByName(monthName)
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func monthByName(name string) (time.Month, bool) {
	switch strings.ToLower(strings.TrimSuffix(name, ".")) {
	case "jan", "january":
		return time.January, true
	case "feb", "february":
		return time.February, true
	case "mar", "march":
		return time.March, true
	case "apr", "april":
		return time.April, true
	case "may":
		return time.May, true
	case "jun", "june":
		return time.June, true
	case "jul", "july":
		return time.July, true
	case "aug", "august":
		return time.August, true
	case "sep", "sept", "september":
		return time.September, true
	case "oct", "october":
		return time.October, true
	case "nov", "november":
		return time.November, true
	case "dec", "december":
		return time.December, true
	}
	return 0, false
}

// lastWeekday resolves a weekday name to its most recent past occurrence.
// The same day of week resolves to last week, never today.
func lastWeekday(now time.Time, name string) (time.Time, bool) {
	target, ok := weekdayByName(name)
	if !ok {
		return time.Time{}, false
	}
	back := (int(now.Weekday()) - int(target) + 7) % 7
	if back == 0 {
		back = 7
	}
	d := now.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location()), true
}

func weekdayByName(name string) (time.Weekday, bool) {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return 0, false
}

// atClock anchors parsed clock parts onto a day. Empty parts mean
// midnight.
func atClock(day time.Time, hStr, mStr, ampm string) (time.Time, bool) {
	if hStr == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()), true
	}
	h, m, ok := clockParts(hStr, mStr, ampm)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), true
}

// clockParts validates hour/minute ranges instead of clamping: 1-12 for
// 12-hour forms, 0-23 otherwise, minutes 0-59.
func clockParts(hStr, mStr, ampm string) (int, int, bool) {
	h, err := strconv.Atoi(hStr)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(mStr)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	ampm = strings.ToLower(strings.ReplaceAll(ampm, ".", ""))
	switch ampm {
	case "am":
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h < 0 || h > 23 {
			return 0, 0, false
		}
	}
	return h, m, true
}
