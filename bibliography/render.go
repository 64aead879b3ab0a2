package bibliography

import (
	"context"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// RenderCitations formats the requested citations as one <ul> fragment, in
// exactly the order of keys. Keys absent from bib are skipped silently: the
// caller may cite entries the reference document no longer carries, and
// rendering fewer entries beats failing the whole page.
func RenderCitations(bib Bibliography, keys []string) string {
	var b strings.Builder
	b.WriteString(`<ul class="citations">`)
	for _, key := range keys {
		rec, ok := bib[key]
		if !ok {
			continue
		}
		b.WriteString(`<li>`)
		b.WriteString(rec.render())
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// render formats one record as "{First} {Last}, <em>{Title}</em>, {Year}."
// The record was validated at parse time, so the author split cannot fail.
func (r Record) render() string {
	last, first, _ := splitAuthor(r.Author)
	var b strings.Builder
	b.WriteString(html.EscapeString(first))
	b.WriteString(" ")
	b.WriteString(html.EscapeString(last))
	b.WriteString(", <em>")
	b.WriteString(html.EscapeString(r.Title))
	b.WriteString("</em>, ")
	b.WriteString(html.EscapeString(r.Year))
	b.WriteString(".")
	return b.String()
}

// Citations wraps RenderCitations as a templ.Component for embedding in views.
func Citations(bib Bibliography, keys []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderCitations(bib, keys))
		return err
	})
}

// Keys returns every citation key in the bibliography, sorted for
// deterministic "render everything" callers.
func Keys(bib Bibliography) []string {
	keys := make([]string, 0, len(bib))
	for k := range bib {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
