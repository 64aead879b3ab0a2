package pagemill

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MetaDB is a SQLite-backed metadata store. `pagemill index` persists the
// scanned front matter here so other tooling can query declared metadata
// without re-parsing the content tree; it also satisfies MetaResolver for
// discovery against a pre-built index.
type MetaDB struct {
	db *sql.DB
}

// OpenMetaDB opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func OpenMetaDB(path string) (*MetaDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, a busy timeout so writers wait
	// instead of returning SQLITE_BUSY, synchronous=NORMAL to skip the fsync
	// per transaction that WAL makes unnecessary.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	m := &MetaDB{db: db}
	if err := m.ensureSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

// Close closes the underlying database connection.
func (m *MetaDB) Close() error {
	return m.db.Close()
}

func (m *MetaDB) ensureSchema() error {
	_, err := m.db.Exec(`
CREATE TABLE IF NOT EXISTS meta (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    published TEXT NOT NULL,
    summary TEXT NOT NULL,
    tags TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// Resolve returns the declared metadata for slug. An unknown slug resolves
// to a zero Meta with a nil error; only database faults are errors.
func (m *MetaDB) Resolve(slug string) (Meta, error) {
	var title, published, summary, tags string
	var draft int
	err := m.db.QueryRow(`SELECT title, published, summary, tags, draft FROM meta WHERE slug = ?`, slug).
		Scan(&title, &published, &summary, &tags, &draft)
	if err == sql.ErrNoRows {
		return Meta{}, nil
	}
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		Title:     title,
		Published: published,
		Summary:   summary,
		Tags:      ParseTags(tags),
		Draft:     draft == 1,
	}, nil
}

// Put upserts the declared metadata for slug. Tags are normalized to
// lowercase and stored comma-delimited.
func (m *MetaDB) Put(slug string, meta Meta) error {
	normalized := make([]string, len(meta.Tags))
	for i, t := range meta.Tags {
		normalized[i] = normalizeTag(t)
	}
	tagString := "," + strings.Join(normalized, ",") + ","
	draft := 0
	if meta.Draft {
		draft = 1
	}
	_, err := m.db.Exec(`INSERT OR REPLACE INTO meta (slug, title, published, summary, tags, draft) VALUES (?, ?, ?, ?, ?, ?)`,
		slug, meta.Title, meta.Published, meta.Summary, tagString, draft)
	return err
}

// Slugs returns every indexed slug in lexical order.
func (m *MetaDB) Slugs() ([]string, error) {
	rows, err := m.db.Query(`SELECT slug FROM meta ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// Delete removes the metadata for slug.
func (m *MetaDB) Delete(slug string) error {
	_, err := m.db.Exec(`DELETE FROM meta WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a
// slice, dropping empty segments.
func ParseTags(tagString string) []string {
	return FilterEmpty(strings.Split(strings.Trim(tagString, ","), ","))
}
