// Package views provides the default templ components for the pagemill
// preview server. Sites wanting their own look supply their own ViewFuncs;
// these components exist so a fresh site previews out of the box.
package views

import (
	"context"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/eringen/pagemill"
)

// Default returns the built-in view set.
func Default() pagemill.ViewFuncs {
	return pagemill.ViewFuncs{
		Home:         Home,
		Post:         Post,
		Bibliography: Bibliography,
		NotFound:     NotFound,
		ServerError:  ServerError,
	}
}

// Home renders the front page: the tag navigation and the post listing.
func Home(cfg pagemill.SiteConfig, posts []pagemill.Post, activeTag string, tags []string) templ.Component {
	meta := pagemill.PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         pagemill.BuildURL(cfg.URL),
		OGType:      "website",
	}
	return layout(cfg, meta, pagemill.WebsiteJsonLD(cfg), func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="tags">`); err != nil {
			return err
		}
		for _, t := range tags {
			class := "tag"
			if t == activeTag {
				class = "tag active"
			}
			link := `<a class="` + class + `" href="/?tag=` + url.QueryEscape(t) + `">` + html.EscapeString(t) + `</a> `
			if _, err := io.WriteString(w, link); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav>`); err != nil {
			return err
		}
		return pagemill.Listing(posts).Render(ctx, w)
	})
}

// Post renders one post page with its rendered Markdown body.
func Post(cfg pagemill.SiteConfig, post pagemill.Post, body templ.Component) templ.Component {
	title := post.Title
	if title == "" {
		title = post.Slug
	}
	meta := pagemill.PageMeta{
		Title:       title + " — " + cfg.Name,
		Description: post.Summary,
		URL:         pagemill.BuildURL(cfg.URL, post.Slug),
		OGType:      "article",
	}
	return layout(cfg, meta, pagemill.BlogPostingJsonLD(post, cfg), func(ctx context.Context, w io.Writer) error {
		head := `<article><h1>` + html.EscapeString(title) + `</h1>` +
			`<p class="meta"><time datetime="` + post.Date.Format("2006-01-02") + `">` +
			html.EscapeString(post.Date.Format(pagemill.DateLayout)) + `</time>`
		if len(post.Tags) > 0 {
			head += ` · ` + html.EscapeString(pagemill.JoinTags(post.Tags))
		}
		head += `</p>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

// Bibliography renders the references page.
func Bibliography(cfg pagemill.SiteConfig, citations templ.Component) templ.Component {
	meta := pagemill.PageMeta{
		Title:  "References — " + cfg.Name,
		URL:    pagemill.BuildURL(cfg.URL, "bibliography"),
		OGType: "website",
	}
	return layout(cfg, meta, pagemill.WebsiteJsonLD(cfg), func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>References</h1>`); err != nil {
			return err
		}
		return citations.Render(ctx, w)
	})
}

// NotFound renders the 404 page.
func NotFound(cfg pagemill.SiteConfig) templ.Component {
	meta := pagemill.PageMeta{Title: "Not found — " + cfg.Name, OGType: "website"}
	return layout(cfg, meta, "", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Page not found</h1><p><a href="/">Back to the front page.</a></p>`)
		return err
	})
}

// ServerError renders the 500 page.
func ServerError(cfg pagemill.SiteConfig) templ.Component {
	meta := pagemill.PageMeta{Title: "Error — " + cfg.Name, OGType: "website"}
	return layout(cfg, meta, "", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Something went wrong</h1><p>Try again in a moment.</p>`)
		return err
	})
}

// layout wraps a body renderer in the shared page shell. The PageMeta drives
// the title, description, canonical, and OpenGraph tags; jsonLD, when
// non-empty, is embedded as a schema.org script block.
func layout(cfg pagemill.SiteConfig, meta pagemill.PageMeta, jsonLD string, body func(context.Context, io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + html.EscapeString(meta.Title) + `</title>` +
			`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `">` +
			`<meta property="og:type" content="` + html.EscapeString(meta.OGType) + `">`
		if meta.Description != "" {
			head += `<meta name="description" content="` + html.EscapeString(meta.Description) + `">` +
				`<meta property="og:description" content="` + html.EscapeString(meta.Description) + `">`
		}
		if meta.URL != "" {
			head += `<link rel="canonical" href="` + html.EscapeString(meta.URL) + `">` +
				`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `">`
		}
		head += `<link rel="stylesheet" href="/public/site.css">`
		if jsonLD != "" {
			head += `<script type="application/ld+json">` + jsonLD + `</script>`
		}
		head += `</head><body><header><a class="site-name" href="/">` + html.EscapeString(cfg.Name) + `</a></header><main>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer><a href="/feed.xml">RSS</a> · <a href="/bibliography/">References</a></footer></body></html>`)
		return err
	})
}
