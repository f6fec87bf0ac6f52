package markdown_test

import (
	"strings"
	"testing"

	"lernova/internal/platform/markdown"
)

func TestRenderFrontmatterKeepsFieldOrder(t *testing.T) {
	t.Parallel()
	out, err := markdown.RenderFrontmatter([]markdown.Field{
		{Key: "id", Value: "s-1"},
		{Key: "topic", Value: "Go"},
		{Key: "ended_at", Value: nil},
		{Key: "blocked_urls", Value: []string{"https://x.com"}},
	}, "# Focus\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "---\nid: s-1\ntopic: Go\nblocked_urls:\n") {
		t.Fatalf("unexpected order:\n%s", out)
	}
	if strings.Contains(out, "ended_at") {
		t.Fatalf("nil values should be skipped:\n%s", out)
	}

	meta, body, err := markdown.SplitFrontmatter(strings.ReplaceAll(out, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["topic"] != "Go" || body != "\n# Focus\n" {
		t.Fatalf("unexpected split: %v %q", meta, body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain note")
	if err != nil || len(meta) != 0 || body != "plain note" {
		t.Fatalf("unexpected result: %v %q %v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nid: 1\nno close"); err == nil {
		t.Fatalf("missing closing separator should fail")
	}
}

func TestBlockReplaceAndLines(t *testing.T) {
	t.Parallel()
	block := markdown.NewBlock("lernova:sessions")

	body := block.Replace("# Today\n", "- [[a]]")
	if body != "# Today\n\n<!-- lernova:sessions:start -->\n- [[a]]\n<!-- lernova:sessions:end -->\n" {
		t.Fatalf("unexpected append:\n%q", body)
	}
	body += "\nmy notes\n"
	body = block.Replace(body, "- [[a]]\n- [[b]]")
	if !strings.HasSuffix(body, "<!-- lernova:sessions:end -->\n\nmy notes\n") {
		t.Fatalf("text after block should survive:\n%s", body)
	}
	if got := block.Lines(body); len(got) != 2 || got[1] != "- [[b]]" {
		t.Fatalf("unexpected lines %v", got)
	}
	if got := block.Lines("no block here"); got != nil {
		t.Fatalf("expected nil lines, got %v", got)
	}
}
