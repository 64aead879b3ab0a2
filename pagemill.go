// Package pagemill is the content-aggregation core of a static blog
// generator built with Go, Echo, and templ. It discovers content pages on
// the filesystem, orders them by effective publish date, renders HTML
// listing fragments, and formats bibliographies from a structured reference
// file. A preview server and a build command sit on top of the core.
//
// Users provide their own templ components via the ViewFuncs struct; the
// core only produces fragments and data for them to embed.
package pagemill

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the preview server
// calls when rendering pages. This is the inversion-of-control mechanism
// that lets users own and customize all templates.
type ViewFuncs struct {
	Home         func(cfg SiteConfig, posts []Post, activeTag string, tags []string) templ.Component
	Post         func(cfg SiteConfig, post Post, body templ.Component) templ.Component
	Bibliography func(cfg SiteConfig, citations templ.Component) templ.Component
	NotFound     func(cfg SiteConfig) templ.Component
	ServerError  func(cfg SiteConfig) templ.Component
}

// App is the central pagemill application. It wires together content
// discovery, the preview cache, handlers, middleware, and user templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *contentCache
	Views  ViewFuncs

	meta         MetaResolver
	customRoutes []func(*App)
	staticDir    string
}

// New creates a pagemill App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the cache, middleware, and routes, then starts the
// preview server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pagemill: SessionSecret is required")
	}

	a.Cache = newContentCache(func() ([]Post, TaggedSet, error) {
		return a.load(false)
	}, a.Config.ContentCacheTTL)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// load runs one full aggregation pass: resolve metadata, discover posts,
// collect tags. With no metadata override it scans front matter fresh from
// the content tree, so an unchanged tree always loads identically.
func (a *App) load(includeDrafts bool) ([]Post, TaggedSet, error) {
	meta := a.meta
	var tagged TaggedSet
	if meta == nil {
		m, t, err := ScanContent(a.Config.ContentDir, a.Config.ContentExt)
		if err != nil {
			return nil, nil, err
		}
		meta, tagged = m, t
	}

	src := NewSource(a.Config.ContentDir, meta)
	src.Ext = a.Config.ContentExt
	src.Index = a.Config.IndexFile
	src.IncludeDrafts = includeDrafts

	posts, err := src.ListPosts()
	if err != nil {
		return nil, nil, err
	}
	// The scanned TaggedSet covers published pages only. A drafts session
	// sees its draft tags too, so rebuild from the full post list.
	if includeDrafts || tagged == nil {
		tagged = CollectTags(posts)
	}
	return posts, tagged, nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if closer, ok := a.meta.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("pagemill: required environment variable %s is not set", key)
	}
	return v
}
