package pagemill

import "time"

// Post is one discoverable content page. Posts are re-derived from the
// filesystem and metadata store on every listing call; they are never
// persisted and never mutated after discovery.
type Post struct {
	Path    string    // path relative to the content root, slash-separated
	Slug    string    // Path with the content extension stripped
	Title   string    // declared title, empty when the page declares none
	Summary string    // declared summary, may be empty
	Link    string    // "/" + Slug + "/"
	Date    time.Time // effective publish date, truncated to a calendar day
	Tags    []string
	Draft   bool
}

// Meta holds the declared front-matter attributes of one content page.
// A zero Meta means the page declares nothing; absence is not an error.
type Meta struct {
	Title     string
	Published string // authored as "2 January 2006", empty when undeclared
	Summary   string
	Tags      []string
	Draft     bool
}

// TaggedSet maps a tag name to the ordered slugs of the posts carrying it.
// It is owned and populated by the surrounding system (usually ScanContent)
// and consumed read-only by ListByTag.
type TaggedSet map[string][]string

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
