// Package render turns parsed messages into markdown via mustache
// templates.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/slackmd/slackmd/pkg/slackparse"
)

// Markdown renders messages through the given template. An empty template
// or a render failure falls back to a plain fixed layout so conversion
// never dies on a bad user template.
func Markdown(messages []slackparse.Message, template string) string {
	if template == "" {
		return plain(messages)
	}

	data := map[string]interface{}{
		"messages": templateMessages(messages),
	}
	out, err := mustache.Render(template, data)
	if err != nil {
		// Fall back to the fixed layout if the template fails
		return plain(messages)
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// Document is Markdown with a YAML frontmatter block describing the
// conversation: title, message count, and covered time range.
func Document(messages []slackparse.Message, template, title string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if title != "" {
		fmt.Fprintf(&b, "title: %q\n", title)
	}
	fmt.Fprintf(&b, "messages: %d\n", len(messages))
	if from, to, ok := timeRange(messages); ok {
		fmt.Fprintf(&b, "from: %s\n", from)
		fmt.Fprintf(&b, "to: %s\n", to)
	}
	b.WriteString("---\n\n")
	b.WriteString(Markdown(messages, template))
	return b.String()
}

// timeRange scans normalized timestamps only; raw passthrough strings do
// not participate.
func timeRange(messages []slackparse.Message) (string, string, bool) {
	var from, to time.Time
	for _, m := range messages {
		t, err := time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			continue
		}
		if from.IsZero() || t.Before(from) {
			from = t
		}
		if to.IsZero() || t.After(to) {
			to = t
		}
	}
	if from.IsZero() {
		return "", "", false
	}
	return from.Format(time.RFC3339), to.Format(time.RFC3339), true
}

func templateMessages(messages []slackparse.Message) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]interface{}{
			"username":      m.Username,
			"timestamp":     m.Timestamp,
			"text":          m.Text,
			"thread_info":   m.ThreadInfo,
			"reaction_line": reactionLine(m.Reactions),
		})
	}
	return out
}

// reactionLine flattens reactions into a single "name (count)" list.
func reactionLine(reactions []slackparse.Reaction) string {
	if len(reactions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(reactions))
	for _, r := range reactions {
		parts = append(parts, fmt.Sprintf("%s (%d)", r.Name, r.Count))
	}
	return strings.Join(parts, " ")
}

func plain(messages []slackparse.Message) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString("**" + m.Username + "**")
		if m.Timestamp != "" {
			b.WriteString(" (" + m.Timestamp + ")")
		}
		b.WriteString("\n\n")
		if m.Text != "" {
			b.WriteString(m.Text + "\n")
		}
		if line := reactionLine(m.Reactions); line != "" {
			b.WriteString("> " + line + "\n")
		}
		if m.ThreadInfo != "" {
			b.WriteString("> _" + m.ThreadInfo + "_\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
