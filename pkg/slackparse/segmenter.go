package slackparse

import "strings"

// segment walks the line sequence once, opening and closing tentative
// message blocks from classifier scores. Ambiguity is tolerated here; the
// refiner gets a second look at everything.
func segment(ctx *parserContext) {
	var cur *messageBlock
	blanks := 0

	flush := func() {
		if cur != nil {
			ctx.blocks = append(ctx.blocks, cur)
			cur = nil
		}
	}

	for i := 0; i < len(ctx.lines); i++ {
		ln := ctx.lines[i]
		if ln.text == "" {
			blanks++
			if blanks >= 2 {
				flush()
			} else if cur != nil {
				// A single blank is paragraph separation inside the block.
				cur.body = append(cur.body, "")
				cur.end = ln.index
			}
			continue
		}
		blanks = 0

		score := scoreLine(ln.text, ctx.opts.Hint)
		ctx.tracef("line %d u=%.2f t=%.2f c=%.2f d=%.2f m=%.2f o=%.2f %q",
			ln.index, score.Username, score.Timestamp, score.Combined,
			score.DateSep, score.Metadata, score.Overall, ln.text)

		switch {
		case score.DateSep > 0.8:
			flush()
			if d, ok := parseSeparatorDate(ln.text, ctx.now); ok {
				ctx.dates = append(ctx.dates, dateMark{line: ln.index, date: d})
				ctx.tracef("line %d date context -> %s", ln.index, d.Format("2006-01-02"))
			}

		case score.Metadata > 0.8 && score.Combined < 0.7:
			if cur == nil {
				ctx.tracef("line %d metadata discarded", ln.index)
				continue
			}
			// A reaction emoji, as a :token: or a bare glyph, followed by
			// a count line belongs to the block; keep both for the
			// extractor pass.
			if (reEmojiToken.MatchString(ln.text) || isEmojiOnly(ln.text)) && reBareNumber.MatchString(ctx.lineText(i+1)) {
				cur.body = append(cur.body, ln.text, ctx.lineText(i+1))
				cur.end = ln.index + 1
				i++
				continue
			}
			if isThreadContinuation(ln.text) {
				cur.body = append(cur.body, ln.text)
				cur.end = ln.index
				continue
			}
			ctx.tracef("line %d metadata discarded", ln.index)

		case score.Overall > 0.6 && (score.Username > 0.7 || score.Combined > 0.7):
			flush()
			cur = openHeaderBlock(ctx, ln, score)
			// A header with no inline time often has its timestamp pasted
			// as an indented line right below.
			if cur.timestamp == "" && i+1 < len(ctx.lines) {
				next := ctx.lines[i+1]
				if next.raw != next.text && reBareTime.MatchString(next.text) {
					cur.timestamp = next.text
					cur.end = next.index
					i++
				}
			}

		case cur != nil:
			cur.body = append(cur.body, ln.text)
			cur.end = ln.index

		case score.Metadata < 0.5:
			// Orphaned content with no header: keep it rather than lose it.
			cur = &messageBlock{
				start:      ln.index,
				end:        ln.index,
				body:       []string{ln.text},
				confidence: 0.3,
			}
			ctx.tracef("line %d fallback block opened", ln.index)
		}
	}
	flush()
}

// openHeaderBlock creates a block at a high-confidence header line and
// extracts its username/timestamp fields.
func openHeaderBlock(ctx *parserContext, ln line, score PatternScore) *messageBlock {
	b := &messageBlock{start: ln.index, end: ln.index, confidence: score.Overall}

	if m, ok := matchCombined(ln.text, ctx.opts.Hint); ok {
		b.username = cleanUsername(m.username)
		b.timestamp = m.timestamp
		ctx.tracef("line %d header user=%q ts=%q (combined)", ln.index, b.username, b.timestamp)
		return b
	}

	// No combined shape: fall back to the independent axes.
	if score.Username >= 0.7 {
		b.username = cleanUsername(ln.text)
	} else if score.Timestamp >= 0.7 {
		b.timestamp = ln.text
	}
	ctx.tracef("line %d header user=%q ts=%q", ln.index, b.username, b.timestamp)
	return b
}

// cleanUsername normalizes an extracted username: strips emoji and avatar
// markdown, collapses doubled names, trims trailing punctuation. An empty
// result falls back to the unknown-user sentinel.
func cleanUsername(name string) string {
	name = reAvatarPrefix.ReplaceAllString(name, "")
	name = reEmojiStrip.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if collapsed, ok := splitDoubledName(name); ok {
		name = strings.TrimSpace(collapsed)
	}
	name = strings.TrimRight(name, " .,:;!?-")
	if name == "" {
		return UnknownUser
	}
	return name
}
