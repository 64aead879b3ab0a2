package pagemill

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// RenderListing turns an ordered post sequence into a single <ul> fragment.
// Each entry carries the effective date as plain text and a link using the
// post's URL and resolved title; a post with no declared title falls back to
// its slug. Empty input yields an empty, well-formed <ul></ul>.
func RenderListing(posts []Post) string {
	var b strings.Builder
	b.WriteString(`<ul class="post-list">`)
	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = p.Slug
		}
		b.WriteString(`<li><time datetime="`)
		b.WriteString(p.Date.Format("2006-01-02"))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(p.Date.Format(DateLayout)))
		b.WriteString(`</time> <a href="`)
		b.WriteString(html.EscapeString(p.Link))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(title))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// Listing wraps RenderListing as a templ.Component for embedding in views.
func Listing(posts []Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderListing(posts))
		return err
	})
}
