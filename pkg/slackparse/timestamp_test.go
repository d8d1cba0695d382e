package slackparse

import (
	"testing"
	"time"
)

// Saturday, February 10, 2024, noon UTC.
var testNow = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

func TestNormalizeTimestamp_BareTime(t *testing.T) {
	got, ok := normalizeTimestamp("3:13 PM", time.Time{}, testNow)
	if !ok {
		t.Fatal("normalizeTimestamp(3:13 PM) ok = false, want true")
	}
	want := time.Date(2024, 2, 10, 15, 13, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("normalizeTimestamp(3:13 PM) = %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_ContextDate(t *testing.T) {
	ctxDate := time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)
	got, ok := normalizeTimestamp("10:00 AM", ctxDate, testNow)
	if !ok {
		t.Fatal("ok = false, want true")
	}
	want := time.Date(2024, 2, 4, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_TodayYesterday(t *testing.T) {
	got, ok := normalizeTimestamp("Today at 3:45 PM", time.Time{}, testNow)
	if !ok {
		t.Fatal("Today: ok = false")
	}
	want := time.Date(2024, 2, 10, 15, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Today at 3:45 PM = %v, want %v", got, want)
	}

	got, ok = normalizeTimestamp("Yesterday at 9:05 AM", time.Time{}, testNow)
	if !ok {
		t.Fatal("Yesterday: ok = false")
	}
	want = time.Date(2024, 2, 9, 9, 5, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Yesterday at 9:05 AM = %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_Weekday(t *testing.T) {
	// testNow is a Saturday; Friday resolves to the day before.
	got, ok := normalizeTimestamp("Friday at 2:00 PM", time.Time{}, testNow)
	if !ok {
		t.Fatal("Friday: ok = false")
	}
	want := time.Date(2024, 2, 9, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Friday at 2:00 PM = %v, want %v", got, want)
	}

	// Same day of week resolves to last week, never today.
	got, ok = normalizeTimestamp("Saturday", time.Time{}, testNow)
	if !ok {
		t.Fatal("Saturday: ok = false")
	}
	want = time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Saturday = %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_MonthDay(t *testing.T) {
	got, ok := normalizeTimestamp("February 4th at 3:13 PM", time.Time{}, testNow)
	if !ok {
		t.Fatal("ok = false")
	}
	want := time.Date(2024, 2, 4, 15, 13, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Without a time: midnight.
	got, ok = normalizeTimestamp("Jan 6", time.Time{}, testNow)
	if !ok {
		t.Fatal("Jan 6: ok = false")
	}
	want = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Jan 6 = %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_LinkWrapper(t *testing.T) {
	got, ok := normalizeTimestamp("[3:13 PM](https://w.slack.com/archives/C1/p1)", time.Time{}, testNow)
	if !ok {
		t.Fatal("ok = false")
	}
	want := time.Date(2024, 2, 10, 15, 13, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_Seconds(t *testing.T) {
	got, ok := normalizeTimestamp("3:13:22 PM", time.Time{}, testNow)
	if !ok {
		t.Fatal("ok = false")
	}
	want := time.Date(2024, 2, 10, 15, 13, 22, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeTimestamp_OutOfRange(t *testing.T) {
	for _, raw := range []string{
		"13:00 PM", // 12-hour form with hour 13
		"0:30 AM",
		"25:00",
		"3:77 PM",
	} {
		if _, ok := normalizeTimestamp(raw, time.Time{}, testNow); ok {
			t.Errorf("normalizeTimestamp(%q) ok = true, want false", raw)
		}
	}
}

func TestNormalizeTimestamp_Unparseable(t *testing.T) {
	if _, ok := normalizeTimestamp("sometime later", time.Time{}, testNow); ok {
		t.Error("normalizeTimestamp(sometime later) ok = true, want false")
	}
	if _, ok := normalizeTimestamp("", time.Time{}, testNow); ok {
		t.Error("normalizeTimestamp(empty) ok = true, want false")
	}
}

func TestParseDate_Rollover(t *testing.T) {
	if _, ok := ParseDate("Feb 30, 2024"); ok {
		t.Error("ParseDate(Feb 30, 2024) ok = true, want false")
	}
	got, ok := ParseDate("Feb 29, 2024")
	if !ok {
		t.Fatal("ParseDate(Feb 29, 2024) ok = false, want true (leap year)")
	}
	if got.Month() != time.February || got.Day() != 29 || got.Year() != 2024 {
		t.Errorf("ParseDate(Feb 29, 2024) = %v", got)
	}
	if _, ok := ParseDate("Feb 29, 2023"); ok {
		t.Error("ParseDate(Feb 29, 2023) ok = true, want false")
	}
}

func TestParseSeparatorDate(t *testing.T) {
	got, ok := parseSeparatorDate("Tuesday, February 4th", testNow)
	if !ok {
		t.Fatal("ok = false")
	}
	want := time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, ok = parseSeparatorDate("--- February 4, 2024 ---", testNow)
	if !ok {
		t.Fatal("dash-wrapped: ok = false")
	}
	if !got.Equal(want) {
		t.Errorf("dash-wrapped: got %v, want %v", got, want)
	}
}
