package pagemill

import (
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/pagemill/bibliography"
	"github.com/eringen/pagemill/markdown"
)

const sessionName = "preview_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt"
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/bibliography/", a.handleBibliography)
	e.POST("/preview/drafts/", a.handleDraftToggle)
	e.GET("/", a.handleHome)

	// Slugs may be nested ("notes/2026/foo"), so posts take the catch-all.
	e.GET("/*", a.handlePost)
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, tags, err := a.pagePosts(c, tag)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.Config, posts, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	slug := strings.Trim(c.Request().URL.Path, "/")
	post, err := a.findPost(c, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		}
		return err
	}
	path := filepath.Join(a.Config.ContentDir, filepath.FromSlash(post.Path))
	body, err := ReadBody(path)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(a.Config, post, markdown.Markdown(body)))
}

func (a *App) handleBibliography(c echo.Context) error {
	// Re-parsed on every request, same as the original build pass; the
	// reference file is small and this keeps the page current.
	bib, err := bibliography.ParseFile(a.Config.Bibliography)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bib = bibliography.Bibliography{}
		} else {
			return err
		}
	}
	citations := bibliography.Citations(bib, bibliography.Keys(bib))
	return Render(c, a.Views.Bibliography(a.Config, citations))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	out, err := sitemapXML(a.Config, posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", out)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts("")
	if err != nil {
		return err
	}
	out, err := feedXML(a.Config, posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}

// handleDraftToggle flips the session's draft-preview flag. Draft posts are
// only visible to the browser that opted in.
func (a *App) handleDraftToggle(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	on, _ := sess.Values["drafts"].(bool)
	sess.Values["drafts"] = !on
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	// The toggle marks an authoring session; drop the cached published view
	// so the next listing reflects the tree as it is right now.
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// pagePosts returns the posts and tag names for a listing page. The cached
// published view serves most requests; a session with drafts enabled gets a
// fresh uncached load including drafts.
func (a *App) pagePosts(c echo.Context, tag string) ([]Post, []string, error) {
	if !draftsEnabled(c) {
		posts, err := a.Cache.Posts(tag)
		if err != nil {
			return nil, nil, err
		}
		tags, err := a.Cache.Tags()
		if err != nil {
			return nil, nil, err
		}
		return posts, tags, nil
	}

	posts, tagged, err := a.load(true)
	if err != nil {
		return nil, nil, err
	}
	tags := make([]string, 0, len(tagged))
	for t := range tagged {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	if tag == "" {
		return posts, tags, nil
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if t == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, tags, nil
}

func (a *App) findPost(c echo.Context, slug string) (Post, error) {
	if !draftsEnabled(c) {
		return a.Cache.Get(slug)
	}
	posts, _, err := a.load(true)
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func draftsEnabled(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	on, ok := sess.Values["drafts"].(bool)
	return ok && on
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
