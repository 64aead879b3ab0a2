package pagemill

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/eringen/pagemill/bibliography"
)

// Build runs one full aggregation pass and writes every artifact the page
// templates embed into outDir: the front-page listing fragment, one listing
// per tag, the bibliography fragment, the RSS feed, the sitemap, and image
// thumbnails. Drafts are excluded.
func Build(cfg SiteConfig, outDir string) error {
	cfg.setDefaults()

	meta, tagged, err := ScanContent(cfg.ContentDir, cfg.ContentExt)
	if err != nil {
		return err
	}
	src := NewSource(cfg.ContentDir, meta)
	src.Ext = cfg.ContentExt
	src.Index = cfg.IndexFile
	posts, err := src.ListPosts()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(outDir, "tags"), 0o755); err != nil {
		return fmt.Errorf("pagemill: build: %w", err)
	}

	write := func(name string, data []byte) error {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
			return fmt.Errorf("pagemill: build %s: %w", name, err)
		}
		return nil
	}

	if err := write("listing.html", []byte(RenderListing(posts))); err != nil {
		return err
	}

	// Slugify is lossy, so two distinct tags can map to the same filename.
	// Fail loudly instead of letting one tag page silently overwrite another.
	tags := make([]string, 0, len(tagged))
	for tag := range tagged {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	slugged := make(map[string]string, len(tags))
	for _, tag := range tags {
		slug := Slugify(tag)
		if other, ok := slugged[slug]; ok {
			return fmt.Errorf("pagemill: build: tags %q and %q collide on page name %q", other, tag, slug)
		}
		slugged[slug] = tag

		tagPosts, err := src.ListByTag(tagged, tag)
		if err != nil {
			return err
		}
		name := filepath.Join("tags", slug+".html")
		if err := write(name, []byte(RenderListing(tagPosts))); err != nil {
			return err
		}
	}

	bib, err := bibliography.ParseFile(cfg.Bibliography)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		bib = bibliography.Bibliography{}
	}
	citations := bibliography.RenderCitations(bib, bibliography.Keys(bib))
	if err := write("bibliography.html", []byte(citations)); err != nil {
		return err
	}

	feed, err := feedXML(cfg, posts)
	if err != nil {
		return fmt.Errorf("pagemill: build feed: %w", err)
	}
	if err := write("feed.xml", feed); err != nil {
		return err
	}

	sitemap, err := sitemapXML(cfg, posts)
	if err != nil {
		return fmt.Errorf("pagemill: build sitemap: %w", err)
	}
	if err := write("sitemap.xml", sitemap); err != nil {
		return err
	}

	// Thumbnails are optional; a site without an image directory is fine.
	if _, err := os.Stat(cfg.ThumbnailDir); err == nil {
		if err := Thumbnails(cfg.ThumbnailDir, filepath.Join(outDir, "thumbs"), cfg.ThumbnailWidth); err != nil {
			return err
		}
	}

	return nil
}

// Index scans the content tree and persists every page's declared metadata
// into the SQLite store at dbPath, replacing stale rows and deleting rows
// whose pages are gone.
func Index(cfg SiteConfig, dbPath string) error {
	cfg.setDefaults()

	meta, _, err := ScanContent(cfg.ContentDir, cfg.ContentExt)
	if err != nil {
		return err
	}

	db, err := OpenMetaDB(dbPath)
	if err != nil {
		return fmt.Errorf("pagemill: open meta db: %w", err)
	}
	defer db.Close()

	for slug, m := range meta {
		if err := db.Put(slug, m); err != nil {
			return fmt.Errorf("pagemill: index %s: %w", slug, err)
		}
	}

	slugs, err := db.Slugs()
	if err != nil {
		return fmt.Errorf("pagemill: index: %w", err)
	}
	for _, slug := range slugs {
		if _, ok := meta[slug]; !ok {
			if err := db.Delete(slug); err != nil {
				return fmt.Errorf("pagemill: prune %s: %w", slug, err)
			}
		}
	}
	return nil
}
