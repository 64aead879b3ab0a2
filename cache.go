package pagemill

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("pagemill: post not found")

// contentCache is an in-memory TTL cache over a content load (scan +
// discovery), used only by the preview server so page views do not re-walk
// the tree on every request. The core Source APIs stay uncached.
type contentCache struct {
	mu      sync.RWMutex
	posts   []Post
	tagged  TaggedSet
	tags    []string
	fetched time.Time
	ttl     time.Duration
	load    func() ([]Post, TaggedSet, error)
}

func newContentCache(load func() ([]Post, TaggedSet, error), ttl time.Duration) *contentCache {
	return &contentCache{load: load, ttl: ttl}
}

func (c *contentCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *contentCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tagged = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *contentCache) reload() error {
	if c.valid() {
		return nil
	}
	posts, tagged, err := c.load()
	if err != nil {
		return err
	}
	tags := make([]string, 0, len(tagged))
	for t := range tagged {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	c.posts = posts
	c.tagged = tagged
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock for a reload.
func (c *contentCache) ensureLoaded() ([]Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reload(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// Posts returns cached posts, optionally filtered by tag.
func (c *contentCache) Posts(tag string) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
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
	return filtered, nil
}

// Tags returns the sorted tag names of all cached posts.
func (c *contentCache) Tags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// Get returns a single cached post by slug.
func (c *contentCache) Get(slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
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
