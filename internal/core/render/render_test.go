package render

import (
	"strings"
	"testing"

	"github.com/slackmd/slackmd/internal/core/config"
	"github.com/slackmd/slackmd/pkg/slackparse"
)

func sampleMessages() []slackparse.Message {
	return []slackparse.Message{
		{
			Username:  "Alex Mittell",
			Timestamp: "2024-02-04T15:13:00Z",
			Text:      "hello there",
			Reactions: []slackparse.Reaction{{Name: "thumbsup", Count: 3}},
		},
		{
			Username:   slackparse.UnknownUser,
			Text:       "a reply",
			ThreadInfo: "view thread",
		},
	}
}

func TestMarkdownDefaultTemplate(t *testing.T) {
	out := Markdown(sampleMessages(), config.DefaultTemplate)

	for _, want := range []string{
		"**Alex Mittell** (2024-02-04T15:13:00Z)",
		"hello there",
		"thumbsup (3)",
		"**Unknown User**",
		"_view thread_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownBadTemplateFallsBack(t *testing.T) {
	out := Markdown(sampleMessages(), "{{#unclosed}}")
	if !strings.Contains(out, "Alex Mittell") {
		t.Errorf("fallback output missing content:\n%s", out)
	}
}

func TestMarkdownEmptyTemplate(t *testing.T) {
	out := Markdown(sampleMessages(), "")
	if !strings.Contains(out, "**Alex Mittell** (2024-02-04T15:13:00Z)") {
		t.Errorf("plain layout missing header:\n%s", out)
	}
}

func TestDocumentFrontmatter(t *testing.T) {
	out := Document(sampleMessages(), config.DefaultTemplate, "deploy retro")

	if !strings.HasPrefix(out, "---\n") {
		t.Fatalf("missing frontmatter open:\n%s", out)
	}
	for _, want := range []string{
		`title: "deploy retro"`,
		"messages: 2",
		"from: 2024-02-04T15:13:00Z",
		"to: 2024-02-04T15:13:00Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("frontmatter missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "**Alex Mittell**") {
		t.Error("body missing after frontmatter")
	}
}

func TestTimeRange_NoNormalizedTimestamps(t *testing.T) {
	messages := []slackparse.Message{{Username: "Bob", Timestamp: "sometime later"}}
	if _, _, ok := timeRange(messages); ok {
		t.Error("raw timestamps should not produce a range")
	}
}

func TestReactionLine(t *testing.T) {
	got := reactionLine([]slackparse.Reaction{
		{Name: "thumbsup", Count: 3},
		{Name: "joy", Count: 1},
	})
	if got != "thumbsup (3) joy (1)" {
		t.Errorf("reactionLine = %q", got)
	}
	if reactionLine(nil) != "" {
		t.Error("empty reactions should render nothing")
	}
}
