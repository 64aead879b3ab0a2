package pagemill

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire format for authored publish dates, e.g.
// "6 February 2026". Content authors write it; discovery parses it;
// listings render it back.
const DateLayout = "2 January 2006"

// Source discovers content pages under a root directory. Every listing call
// re-walks the tree and re-resolves metadata; nothing is cached here.
type Source struct {
	Root  string
	Ext   string // file extension marking a file as content
	Index string // per-directory index file, excluded from listings
	Meta  MetaResolver

	// IncludeDrafts keeps pages declared draft in listings. Off by default;
	// the preview server turns it on per session.
	IncludeDrafts bool
}

// NewSource creates a Source over root with the default ".md" extension and
// "index.md" index file.
func NewSource(root string, meta MetaResolver) *Source {
	return &Source{Root: root, Ext: ".md", Index: "index.md", Meta: meta}
}

// ListPosts walks the content tree and returns every eligible page ordered
// by effective publish date, most recent first. Pages with equal dates keep
// their walk order, so two calls on an unchanged tree return identical
// sequences.
func (s *Source) ListPosts() ([]Post, error) {
	var posts []Post
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), s.Ext) || d.Name() == s.Index {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		p, err := s.post(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if p.Draft && !s.IncludeDrafts {
			return nil
		}
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pagemill: list posts: %w", err)
	}
	sortByDate(posts)
	return posts, nil
}

// ListByTag returns the posts carrying tag, ordered like ListPosts. A tag
// absent from tagged yields an empty result, not an error. The tagged set is
// externally owned and read only.
func (s *Source) ListByTag(tagged TaggedSet, tag string) ([]Post, error) {
	slugs, ok := tagged[normalizeTag(tag)]
	if !ok {
		return nil, nil
	}
	posts := make([]Post, 0, len(slugs))
	for _, slug := range slugs {
		p, err := s.post(slug + s.Ext)
		if err != nil {
			return nil, fmt.Errorf("pagemill: list tag %q: %w", tag, err)
		}
		if p.Draft && !s.IncludeDrafts {
			continue
		}
		posts = append(posts, p)
	}
	sortByDate(posts)
	return posts, nil
}

func (s *Source) post(rel string) (Post, error) {
	slug := strings.Trim(strings.TrimSuffix(rel, s.Ext), "/")
	meta, err := s.Meta.Resolve(slug)
	if err != nil {
		return Post{}, err
	}
	date, err := effectiveDate(meta, filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		return Post{}, err
	}
	return Post{
		Path:    rel,
		Slug:    slug,
		Title:   meta.Title,
		Summary: meta.Summary,
		Link:    "/" + slug + "/",
		Date:    date,
		Tags:    meta.Tags,
		Draft:   meta.Draft,
	}, nil
}

// effectiveDate is the sort key for listings: the declared published date
// when present, otherwise the backing file's timestamp truncated to a
// calendar day. A declared date that fails DateLayout aborts the listing;
// silently defaulting to "today" would corrupt ordering invisibly.
func effectiveDate(meta Meta, path string) (time.Time, error) {
	if meta.Published != "" {
		t, err := time.Parse(DateLayout, meta.Published)
		if err != nil {
			return time.Time{}, fmt.Errorf("published date %q for %s: %w", meta.Published, path, err)
		}
		return t, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return dateOnly(info.ModTime()), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sortByDate orders posts most recent first. The sort is stable so posts
// with equal dates keep their enumeration order.
func sortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
