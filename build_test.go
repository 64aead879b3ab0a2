package pagemill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	writeContent(t, content, "index.md", "# Home\n")
	writeContent(t, content, "first.md", "---\ntitle: First\npublished: 15 November 2025\ntags: [go]\n---\nbody\n")
	writeContent(t, content, "second.md", "---\ntitle: Second\npublished: 6 February 2026\ntags: [go]\n---\nbody\n")
	refs := filepath.Join(root, "refs.bib")
	if err := os.WriteFile(refs, []byte("[stormo2020]\nauthor = Stormo, Gary\ntitle = Motif Discovery\nyear = 2020\n"), 0o644); err != nil {
		t.Fatalf("write refs: %v", err)
	}

	cfg := SiteConfig{
		Name:         "Mill",
		URL:          "https://example.com",
		ContentDir:   content,
		Bibliography: refs,
		ThumbnailDir: filepath.Join(root, "no-images"),
	}
	outDir := filepath.Join(root, "out")
	if err := Build(cfg, outDir); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	listing, err := os.ReadFile(filepath.Join(outDir, "listing.html"))
	if err != nil {
		t.Fatalf("read listing: %v", err)
	}
	if strings.Contains(string(listing), "Home") {
		t.Error("index page leaked into the listing fragment")
	}
	if strings.Index(string(listing), "Second") > strings.Index(string(listing), "First") {
		t.Error("listing fragment not sorted most recent first")
	}

	tagListing, err := os.ReadFile(filepath.Join(outDir, "tags", "go.html"))
	if err != nil {
		t.Fatalf("read tag listing: %v", err)
	}
	if strings.Count(string(tagListing), "<li>") != 2 {
		t.Errorf("tag listing entries = %d, want 2", strings.Count(string(tagListing), "<li>"))
	}

	bib, err := os.ReadFile(filepath.Join(outDir, "bibliography.html"))
	if err != nil {
		t.Fatalf("read bibliography: %v", err)
	}
	if !strings.Contains(string(bib), "Gary Stormo") {
		t.Errorf("bibliography fragment = %q", bib)
	}

	for _, name := range []string{"feed.xml", "sitemap.xml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestBuildTagPageCollision(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	writeContent(t, content, "plus.md", "---\ntitle: Plus\npublished: 15 November 2025\ntags: [\"c++\"]\n---\nbody\n")
	writeContent(t, content, "minus.md", "---\ntitle: Minus\npublished: 6 February 2026\ntags: [\"c--\"]\n---\nbody\n")

	cfg := SiteConfig{ContentDir: content, ThumbnailDir: filepath.Join(root, "no-images")}
	err := Build(cfg, filepath.Join(root, "out"))
	if err == nil {
		t.Fatal("Build succeeded despite two tags sharing a page name")
	}
	if !strings.Contains(err.Error(), "collide") {
		t.Errorf("error = %v, want a tag page collision", err)
	}
}

func TestIndex(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	writeContent(t, content, "keep.md", "---\ntitle: Keep\n---\n")

	dbPath := filepath.Join(root, "meta.db")
	cfg := SiteConfig{ContentDir: content}
	if err := Index(cfg, dbPath); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	// A page removed from the tree is pruned on the next index run.
	if err := os.Remove(filepath.Join(content, "keep.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	writeContent(t, content, "new.md", "---\ntitle: New\n---\n")
	if err := Index(cfg, dbPath); err != nil {
		t.Fatalf("second Index failed: %v", err)
	}

	db, err := OpenMetaDB(dbPath)
	if err != nil {
		t.Fatalf("open meta db: %v", err)
	}
	defer db.Close()

	slugs, err := db.Slugs()
	if err != nil {
		t.Fatalf("Slugs failed: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "new" {
		t.Errorf("Slugs = %v, want [new]", slugs)
	}
	meta, err := db.Resolve("new")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if meta.Title != "New" {
		t.Errorf("Title = %q, want New", meta.Title)
	}
}
