package slackparse

import (
	"fmt"
	"strings"
	"time"
)

// dateMark records a date-separator hit so later passes can replay the
// running date context in line order.
type dateMark struct {
	line int
	date time.Time
}

// parserContext holds all working state for one Parse call. Never shared:
// each call builds a fresh context, so concurrent parses are safe.
type parserContext struct {
	lines  []line
	blocks []*messageBlock
	dates  []dateMark
	now    time.Time
	opts   Options
	trace  []string
}

func newContext(text string, opts *Options) *parserContext {
	ctx := &parserContext{now: time.Now()}
	if opts != nil {
		ctx.opts = *opts
		if !opts.Now.IsZero() {
			ctx.now = opts.Now
		}
	}
	if text == "" {
		return ctx
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	ctx.lines = make([]line, len(raw))
	for i, r := range raw {
		ctx.lines[i] = line{index: i, raw: r, text: strings.TrimSpace(r)}
	}
	return ctx
}

// lineText returns the trimmed text of line i, or "" when out of range.
func (ctx *parserContext) lineText(i int) string {
	if i < 0 || i >= len(ctx.lines) {
		return ""
	}
	return ctx.lines[i].text
}

// lineRaw returns the raw (untrimmed) text of line i.
func (ctx *parserContext) lineRaw(i int) string {
	if i < 0 || i >= len(ctx.lines) {
		return ""
	}
	return ctx.lines[i].raw
}

func (ctx *parserContext) tracef(format string, args ...interface{}) {
	if !ctx.opts.Debug {
		return
	}
	ctx.trace = append(ctx.trace, fmt.Sprintf(format, args...))
}
