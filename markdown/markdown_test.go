package markdown

import (
	"context"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out, err := Render([]byte("# Hello\n\nSome *emphasis* and a [link](https://example.com).\n"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in %q", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("missing emphasis in %q", html)
	}
	if !strings.Contains(html, `<a href="https://example.com"`) {
		t.Errorf("missing link in %q", html)
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("GFM tables not rendered: %q", out)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var b strings.Builder
	if err := Markdown("plain text").Render(context.Background(), &b); err != nil {
		t.Fatalf("component render failed: %v", err)
	}
	if !strings.Contains(b.String(), "<p>plain text</p>") {
		t.Errorf("component output = %q", b.String())
	}
}
