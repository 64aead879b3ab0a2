package pagemill

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  ", "spaces"},
		{"Go 1.24: What's New?", "go-1-24-what-s-new"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"notes", "tooling"}, "https://example.com/notes/tooling/"},
		{"https://example.com/base", []string{"post"}, "https://example.com/base/post/"},
	}

	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Mill", URL: "https://example.com", Author: "Jane Doe"}
	got := WebsiteJsonLD(cfg)
	if !strings.Contains(got, `"WebSite"`) || !strings.Contains(got, "Jane Doe") {
		t.Errorf("WebsiteJsonLD = %q", got)
	}
}
