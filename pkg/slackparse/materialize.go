package slackparse

import (
	"strings"
	"time"
)

// materialize converts the refined block list into output messages,
// replaying the date-separator context in line order. Blocks with no
// text, reactions, or thread info are dropped silently.
func materialize(ctx *parserContext) []Message {
	var out []Message
	var ctxDate time.Time
	dateIdx := 0

	for _, b := range ctx.blocks {
		for dateIdx < len(ctx.dates) && ctx.dates[dateIdx].line < b.start {
			ctxDate = ctx.dates[dateIdx].date
			dateIdx++
		}

		username := b.username
		if username == "" {
			username = UnknownUser
		}

		// Bare leftover timestamps in the body are segmentation residue,
		// not content.
		var kept []string
		for _, l := range b.body {
			t := strings.TrimSpace(l)
			if t != "" && (reBareTime.MatchString(t) || reTimeSeconds.MatchString(t)) {
				continue
			}
			kept = append(kept, l)
		}
		text := strings.TrimSpace(strings.Join(kept, "\n"))
		text = resolveTokens(text, ctx.opts)

		ts := b.timestamp
		if ts != "" {
			if t, ok := normalizeTimestamp(ts, ctxDate, ctx.now); ok {
				ts = t.Format(time.RFC3339)
				// The resolved date carries forward for later bare times.
				ctxDate = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			}
			// On failure the raw string passes through unmodified.
		}

		if text == "" && len(b.reactions) == 0 && b.threadInfo == "" {
			ctx.tracef("block@%d dropped (no payload)", b.start)
			continue
		}

		reactions := b.reactions
		if len(reactions) > 0 && len(ctx.opts.EmojiMap) > 0 {
			reactions = make([]Reaction, len(b.reactions))
			copy(reactions, b.reactions)
			for i := range reactions {
				if glyph, ok := ctx.opts.EmojiMap[reactions[i].Name]; ok {
					reactions[i].Name = glyph
				}
			}
		}

		out = append(out, Message{
			Username:   username,
			Timestamp:  ts,
			Text:       text,
			Avatar:     b.avatar,
			Reactions:  reactions,
			ThreadInfo: b.threadInfo,
		})
	}
	return out
}

// resolveTokens applies the caller-supplied lookup maps to mention and
// emoji tokens in message text. Missing keys pass through untouched.
func resolveTokens(text string, opts Options) string {
	if len(opts.UserMap) > 0 {
		text = reMention.ReplaceAllStringFunc(text, func(tok string) string {
			id := reMention.FindStringSubmatch(tok)[1]
			if name, ok := opts.UserMap[id]; ok {
				return "@" + name
			}
			return tok
		})
	}
	if len(opts.EmojiMap) > 0 {
		text = reEmojiCode.ReplaceAllStringFunc(text, func(tok string) string {
			code := reEmojiCode.FindStringSubmatch(tok)[1]
			if glyph, ok := opts.EmojiMap[code]; ok {
				return glyph
			}
			return tok
		})
	}
	return text
}
