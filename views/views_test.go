package views

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pagemill"
)

func TestHome(t *testing.T) {
	cfg := pagemill.SiteConfig{Name: "Mill", URL: "https://example.com"}
	posts := []pagemill.Post{
		{Slug: "hello", Title: "Hello", Link: "/hello/", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
	}

	var b strings.Builder
	if err := Home(cfg, posts, "", []string{"go"}).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "<!doctype html>") {
		t.Error("missing document shell")
	}
	if !strings.Contains(out, `<a href="/hello/">Hello</a>`) {
		t.Errorf("missing listing entry in %q", out)
	}
	if !strings.Contains(out, `?tag=go`) {
		t.Error("missing tag navigation")
	}
	if !strings.Contains(out, `<meta property="og:type" content="website">`) {
		t.Error("missing og:type in head")
	}
	if !strings.Contains(out, `"@type":"WebSite"`) {
		t.Error("missing WebSite JSON-LD script")
	}
}

func TestPost(t *testing.T) {
	cfg := pagemill.SiteConfig{Name: "Mill", URL: "https://example.com"}
	post := pagemill.Post{
		Slug:    "hello",
		Title:   "Hello",
		Summary: "A greeting.",
		Date:    time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})

	var b strings.Builder
	if err := Post(cfg, post, body).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `<meta property="og:type" content="article">`) {
		t.Error("missing article og:type")
	}
	if !strings.Contains(out, `<link rel="canonical" href="https://example.com/hello/">`) {
		t.Errorf("missing canonical link in %q", out)
	}
	if !strings.Contains(out, `<meta property="og:description" content="A greeting.">`) {
		t.Error("missing og:description")
	}
	if !strings.Contains(out, `"@type":"BlogPosting"`) {
		t.Error("missing BlogPosting JSON-LD script")
	}
	if !strings.Contains(out, "<p>hi</p>") {
		t.Error("body not rendered")
	}
}

func TestNotFound(t *testing.T) {
	var b strings.Builder
	if err := NotFound(pagemill.SiteConfig{Name: "Mill"}).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(b.String(), "Page not found") {
		t.Errorf("output = %q", b.String())
	}
}
