package pagemill

import (
	"strconv"
	"time"
)

// SiteConfig holds all configuration for a pagemill site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address for the preview server (default ":3000")
	ContentDir   string // Content root (default "content")
	ContentExt   string // Extension marking a file as content (default ".md")
	IndexFile    string // Per-directory index file, excluded from listings (default "index.md")
	Bibliography string // Reference document path (default "content/references.bib")

	SessionSecret string // Required for the preview server's draft toggle
	CookieSecure  bool   // Set true for HTTPS

	ContentCacheTTL time.Duration // preview server content cache TTL (default 5min)

	ThumbnailDir   string // Source directory for listing images (default "images")
	ThumbnailWidth int    // Max thumbnail width in pixels (default 800)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.ContentExt == "" {
		c.ContentExt = ".md"
	}
	if c.IndexFile == "" {
		c.IndexFile = "index.md"
	}
	if c.Bibliography == "" {
		c.Bibliography = "content/references.bib"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.ThumbnailDir == "" {
		c.ThumbnailDir = "images"
	}
	if c.ThumbnailWidth == 0 {
		c.ThumbnailWidth = 800
	}
}

// ConfigFromEnv builds a SiteConfig from SITE_* environment variables,
// for use in standalone main functions.
func ConfigFromEnv() SiteConfig {
	return SiteConfig{
		Name:           EnvOr("SITE_NAME", "Blog"),
		URL:            EnvOr("SITE_URL", "http://localhost:3000"),
		Description:    EnvOr("SITE_DESCRIPTION", ""),
		Author:         EnvOr("SITE_AUTHOR", ""),
		Addr:           EnvOr("SITE_ADDR", ":3000"),
		ContentDir:     EnvOr("SITE_CONTENT_DIR", "content"),
		ContentExt:     EnvOr("SITE_CONTENT_EXT", ".md"),
		IndexFile:      EnvOr("SITE_INDEX_FILE", "index.md"),
		Bibliography:   EnvOr("SITE_BIBLIOGRAPHY", "content/references.bib"),
		SessionSecret:  EnvOr("SITE_SESSION_SECRET", ""),
		CookieSecure:   EnvOr("SITE_COOKIE_SECURE", "") == "true",
		ThumbnailDir:   EnvOr("SITE_THUMBNAIL_DIR", "images"),
		ThumbnailWidth: envInt("SITE_THUMBNAIL_WIDTH", 800),
	}
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(EnvOr(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the preview server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithMetaStore overrides the metadata resolver used for discovery. By
// default the App scans front matter from the content tree on each load;
// pass a MetaDB to resolve from a pre-built index instead.
func WithMetaStore(m MetaResolver) Option {
	return func(a *App) {
		a.meta = m
	}
}
