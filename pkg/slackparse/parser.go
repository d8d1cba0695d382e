// Package slackparse converts unstructured chat-export paste text into a
// sequence of attributed message records. The input has no reliable
// grammar: headers appear in several layouts, usernames can be doubled,
// timestamps can be bare, linked, or relative, and noise lines are
// interleaved with content. Parsing is heuristic (weighted per-line
// scoring plus multi-pass block refinement) and never fails: any string
// input yields a (possibly empty) message list.
package slackparse

// Parse converts pasted conversation text into ordered message records.
// It never returns an error and never panics on malformed input; an empty
// or unrecognizable input yields an empty result.
func Parse(text string, opts *Options) []Message {
	msgs, _ := ParseWithTrace(text, opts)
	return msgs
}

// ParseWithTrace is Parse plus the per-line diagnostic trace. The trace is
// only populated when opts.Debug is set and never affects parsing.
func ParseWithTrace(text string, opts *Options) ([]Message, []string) {
	ctx := newContext(text, opts)
	segment(ctx)
	refine(ctx)
	extractMetadata(ctx)
	msgs := materialize(ctx)
	return msgs, ctx.trace
}
