package slackparse

import "strings"

// scoreLine classifies one trimmed line along the five pattern axes and
// derives the overall confidence. Pure function: no context mutation, no
// failure mode. Anything a pattern cannot match scores 0 on that axis.
func scoreLine(text string, hint FormatHint) PatternScore {
	s := PatternScore{
		Username:  scoreUsernameAxis(text),
		Timestamp: scoreTimestampAxis(text),
		DateSep:   scoreDateSeparatorAxis(text),
	}
	if _, ok := matchCombined(text, hint); ok {
		s.Combined = 0.9
	}
	if isMetadataLine(text) {
		s.Metadata = 0.9
	}

	s.Overall = maxOf(s.Username, s.Timestamp, s.Combined, s.DateSep)
	active := 0
	for _, v := range []float64{s.Username, s.Timestamp, s.Combined, s.DateSep} {
		if v > 0.5 {
			active++
		}
	}
	if active >= 2 {
		s.Overall += 0.1 * float64(active)
		if s.Overall > 1.0 {
			s.Overall = 1.0
		}
	}
	return s
}

// scoreUsernameAxis scores username-likeness. Disqualifiers run first and
// override the allow-listed shape.
func scoreUsernameAxis(text string) float64 {
	if text == "" {
		return 0
	}
	switch {
	case isEmojiOnly(text):
		return 0
	case isRepeatedWord(text):
		return 0
	case reMediaFile.MatchString(text):
		return 0
	case startsWithFiller(text):
		return 0
	case strings.HasSuffix(text, " at"):
		// Incomplete "Month Day at" header split across lines.
		return 0
	case reMonthDayAt.MatchString(text):
		return 0
	}
	if reShortWord.MatchString(text) {
		// 1-3 letter words are ambiguous: could be a short handle, could
		// be a stray word.
		return 0.3
	}
	if _, ok := splitDoubledName(text); ok {
		return 0.8
	}
	if reUsernameShape.MatchString(text) {
		return 0.7
	}
	return 0
}

func scoreTimestampAxis(text string) float64 {
	if reBareTime.MatchString(text) || reTimeSeconds.MatchString(text) {
		return 0.95
	}
	if len(text) < 100 && reLinkedTime.MatchString(text) {
		return 0.9
	}
	if reWeekday.MatchString(text) || reMonthDay.MatchString(text) || reTodayYest.MatchString(text) {
		return 0.8
	}
	return 0
}

func scoreDateSeparatorAxis(text string) float64 {
	if reDateSepLine.MatchString(text) {
		return 0.95
	}
	if m := reDashWrapped.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return 0.95
	}
	return 0
}

func maxOf(vals ...float64) float64 {
	m := 0.0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}
