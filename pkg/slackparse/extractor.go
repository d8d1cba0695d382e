package slackparse

import (
	"strconv"
	"strings"
)

// extractMetadata is the third pass: per block, pull reactions, thread
// annotations, and file-attachment footers out of the body, leaving
// cleaned message text. Everything not recognized is retained verbatim.
func extractMetadata(ctx *parserContext) {
	for _, b := range ctx.blocks {
		extractBlock(ctx, b)
	}
}

func extractBlock(ctx *parserContext, b *messageBlock) {
	var cleaned []string
	var thread []string
	var fileNote string

	for i := 0; i < len(b.body); i++ {
		text := strings.TrimSpace(b.body[i])

		// Emoji line + bare number line = one reaction. The emoji line is
		// either a :token: or a bare Unicode glyph run.
		if i+1 < len(b.body) {
			name := ""
			if m := reEmojiToken.FindStringSubmatch(text); m != nil {
				name = m[1]
			} else if isEmojiOnly(text) {
				name = text
			}
			if name != "" {
				if count, ok := parseCount(strings.TrimSpace(b.body[i+1])); ok {
					b.reactions = append(b.reactions, Reaction{Name: name, Count: count})
					ctx.tracef("block@%d reaction %s x%d", b.start, name, count)
					i++
					continue
				}
			}
		}

		if name, count, ok := matchReactionWithCount(text); ok {
			b.reactions = append(b.reactions, Reaction{Name: name, Count: count})
			ctx.tracef("block@%d reaction %s x%d", b.start, name, count)
			continue
		}

		if reThreadPrefix.MatchString(text) {
			thread = append(thread, text)
			// "replied to a thread:" quotes the next line as context.
			if strings.HasPrefix(strings.ToLower(text), "replied to a thread") && i+1 < len(b.body) {
				next := strings.TrimSpace(b.body[i+1])
				if next != "" && !isMetadataLine(next) {
					thread = append(thread, next)
					i++
				}
			}
			continue
		}
		if reReplyBanner.MatchString(text) || reViewThread.MatchString(text) || reAlsoSent.MatchString(text) {
			thread = append(thread, text)
			continue
		}

		if reFileCount.MatchString(text) {
			note := text
			if i+1 < len(b.body) {
				if next := strings.TrimSpace(b.body[i+1]); reAddedBy.MatchString(next) {
					note = text + " (" + next + ")"
					i++
				}
			}
			fileNote = note
			continue
		}

		cleaned = append(cleaned, b.body[i])
	}

	if fileNote != "" {
		cleaned = append(cleaned, fileNote)
	}
	b.body = cleaned
	if len(thread) > 0 {
		joined := strings.Join(thread, " ")
		if b.threadInfo != "" {
			b.threadInfo += " " + joined
		} else {
			b.threadInfo = joined
		}
	}
}

// matchReactionWithCount matches a single-line emoji+count in any of the
// recognized shapes: :name: N, ![:name:](url) N, or a Unicode emoji run
// followed by N.
func matchReactionWithCount(text string) (string, int, bool) {
	if m := reTokenCount.FindStringSubmatch(text); m != nil {
		if count, ok := parseCount(m[2]); ok {
			return m[1], count, true
		}
		return "", 0, false
	}
	if m := reEmojiImageCount.FindStringSubmatch(text); m != nil {
		if count, ok := parseCount(m[2]); ok {
			return m[1], count, true
		}
		return "", 0, false
	}
	if m := reUnicodeCount.FindStringSubmatch(text); m != nil {
		if count, ok := parseCount(m[2]); ok {
			return m[1], count, true
		}
	}
	return "", 0, false
}

// parseCount accepts only cleanly parsed non-negative integers; anything
// malformed discards the candidate reaction entirely.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
