package slackparse

import "strings"

// bodyLikePrefixes catch "usernames" that are really the start of a
// sentence mis-promoted to a header.
var bodyLikePrefixes = []string{
	"I ", "I'm", "I've", "We ", "We're", "It ", "It's", "And ", "But ",
	"So ", "Also ", "Then ", "Just ", "Thanks", "Yes ", "No ", "Ok ", "OK ",
}

// refine is the second full pass over the block list. Each repair may
// splice the list; merges restart evaluation at the affected index.
func refine(ctx *parserContext) {
	for i := 0; i < len(ctx.blocks); i++ {
		b := ctx.blocks[i]

		repairSplitHeader(ctx, b)

		if i > 0 && mergeContinuation(ctx, i) {
			i -= 2
			continue
		}

		discoverTimestamp(ctx, b)
		attachAvatar(ctx, b)

		if i > 0 && mergeLowConfidence(ctx, i) {
			i -= 2
			continue
		}
	}
}

// repairSplitHeader fixes headers where the date half ("February 4th at")
// landed in the username and the clock time landed on the next line.
func repairSplitHeader(ctx *parserContext, b *messageBlock) {
	if b.timestamp != "" || !strings.HasSuffix(b.username, " at") {
		return
	}
	next := ctx.lineText(b.start + 1)
	if !reBareTime.MatchString(next) {
		return
	}
	b.timestamp = b.username + " " + next
	b.username = UnknownUser
	// The consumed time line may have been captured as body.
	if len(b.body) > 0 && b.body[0] == next {
		b.body = b.body[1:]
	}
	ctx.tracef("block@%d split header repaired ts=%q", b.start, b.timestamp)
}

// mergeContinuation demotes blocks whose "header" is body-text
// continuation, folding them back into the previous block.
func mergeContinuation(ctx *parserContext, i int) bool {
	b := ctx.blocks[i]
	if !looksLikeBodyText(b.username) {
		return false
	}
	prev := ctx.blocks[i-1]
	// The header fields go back as literal text.
	prev.body = append(prev.body, ctx.lineText(b.start))
	prev.body = append(prev.body, b.body...)
	prev.end = b.end
	ctx.blocks = append(ctx.blocks[:i], ctx.blocks[i+1:]...)
	ctx.tracef("block@%d merged into previous (body-like header)", b.start)
	return true
}

func looksLikeBodyText(username string) bool {
	if username == "" || username == UnknownUser {
		return false
	}
	for _, p := range bodyLikePrefixes {
		if strings.HasPrefix(username, p) {
			return true
		}
	}
	// Partial date fragments that survived header extraction.
	return strings.HasSuffix(username, " at") || reMonthDayAt.MatchString(username)
}

// discoverTimestamp promotes a timestamp the segmenter missed: an indented
// bare time right under the header, or a first body line that scores as a
// timestamp.
func discoverTimestamp(ctx *parserContext, b *messageBlock) {
	if b.timestamp != "" {
		return
	}
	next := ctx.lineRaw(b.start + 1)
	trimmed := strings.TrimSpace(next)
	if next != trimmed && reBareTime.MatchString(trimmed) {
		b.timestamp = trimmed
		if len(b.body) > 0 && b.body[0] == trimmed {
			b.body = b.body[1:]
		}
		ctx.tracef("block@%d deferred ts=%q (indented)", b.start, b.timestamp)
		return
	}
	if len(b.body) > 0 && scoreTimestampAxis(b.body[0]) > 0.7 {
		b.timestamp = b.body[0]
		b.body = b.body[1:]
		ctx.tracef("block@%d deferred ts=%q (body)", b.start, b.timestamp)
	}
}

// attachAvatar picks up an avatar-image markdown line pasted immediately
// above the header.
func attachAvatar(ctx *parserContext, b *messageBlock) {
	if b.avatar != "" {
		return
	}
	if m := reAvatarImage.FindStringSubmatch(ctx.lineText(b.start - 1)); m != nil {
		b.avatar = m[1]
	}
}

// mergeLowConfidence folds a headerless low-confidence block into the
// previous block when they are at most one blank line apart.
func mergeLowConfidence(ctx *parserContext, i int) bool {
	b := ctx.blocks[i]
	if b.confidence >= 0.5 || b.username != "" {
		return false
	}
	prev := ctx.blocks[i-1]
	// Trailing blanks absorbed into the previous body still count as
	// separation, so measure from its last content line.
	end := prev.end
	for end > prev.start && ctx.lineText(end) == "" {
		end--
	}
	blanks := 0
	for ln := end + 1; ln < b.start; ln++ {
		if ctx.lineText(ln) != "" {
			return false
		}
		blanks++
	}
	if blanks > 1 {
		return false
	}
	prev.body = append(prev.body, b.body...)
	prev.end = b.end
	ctx.blocks = append(ctx.blocks[:i], ctx.blocks[i+1:]...)
	ctx.tracef("block@%d merged into previous (low confidence)", b.start)
	return true
}
