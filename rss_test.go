package pagemill

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func feedFixture() (SiteConfig, []Post) {
	cfg := SiteConfig{Name: "Mill", URL: "https://example.com", Description: "A test site"}
	posts := []Post{
		{Slug: "newer", Title: "Newer", Summary: "s1", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
		{Slug: "older", Title: "Older", Summary: "s2", Date: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)},
	}
	return cfg, posts
}

func TestFeedXML(t *testing.T) {
	cfg, posts := feedFixture()
	out, err := feedXML(cfg, posts)
	if err != nil {
		t.Fatalf("feedXML failed: %v", err)
	}

	var feed rssXML
	if err := xml.Unmarshal(out, &feed); err != nil {
		t.Fatalf("feed is not valid XML: %v", err)
	}
	if len(feed.Channel.Items) != 2 {
		t.Errorf("item count = %d, want 2", len(feed.Channel.Items))
	}
	if feed.Channel.Items[0].Title != "Newer" {
		t.Errorf("first item = %q, listing order not preserved", feed.Channel.Items[0].Title)
	}
	if !strings.Contains(feed.Channel.Items[0].PubDate, "2026") {
		t.Errorf("PubDate = %q", feed.Channel.Items[0].PubDate)
	}
	if feed.Channel.Items[0].Link != "https://example.com/newer/" {
		t.Errorf("Link = %q", feed.Channel.Items[0].Link)
	}
}

func TestSitemapXML(t *testing.T) {
	cfg, posts := feedFixture()
	out, err := sitemapXML(cfg, posts)
	if err != nil {
		t.Fatalf("sitemapXML failed: %v", err)
	}

	var m sitemapURLSet
	if err := xml.Unmarshal(out, &m); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	// Site root plus one URL per post.
	if len(m.URLs) != 3 {
		t.Errorf("url count = %d, want 3", len(m.URLs))
	}
	if m.URLs[1].LastMod != "2026-02-06" {
		t.Errorf("LastMod = %q", m.URLs[1].LastMod)
	}
}
