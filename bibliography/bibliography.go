// Package bibliography parses a bracket-keyed reference document and formats
// citations as HTML list fragments.
//
// The reference document is plain text. Each entry starts with a [key] line
// followed by "field = value" lines:
//
//	[stormo2020]
//	author = Stormo, Gary
//	title = Motif Discovery
//	year = 2020
//
// Entries missing author, title, or year are dropped; the parse never fails
// on a bad entry, it only yields fewer records.
package bibliography

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Record is one citation. Author is stored "Last, First" — exactly one comma
// separating the halves; records violating that are rejected at parse time
// rather than truncated.
type Record struct {
	Key    string
	Author string // "Last, First"
	Title  string
	Year   string
}

// Bibliography maps citation keys to records. It is built once per render
// request and never mutated afterwards.
type Bibliography map[string]Record

// Parse reads every well-formed entry out of doc. Malformed entries are
// dropped and parsing continues; unknown fields are ignored; duplicate keys
// overwrite, last occurrence wins.
func Parse(doc string) Bibliography {
	bib := make(Bibliography)
	var cur *Record
	commit := func() {
		if cur != nil && cur.valid() {
			bib[cur.Key] = *cur
		}
		cur = nil
	}
	scanner := bufio.NewScanner(strings.NewReader(doc))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, ok := entryKey(line); ok {
			commit()
			cur = &Record{Key: key}
			continue
		}
		if cur == nil {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "author":
			cur.Author = value
		case "title":
			cur.Title = value
		case "year":
			cur.Year = value
		}
	}
	commit()
	return bib
}

// ParseFile parses the reference document at path. The file handle is
// released before Parse runs, on every path.
func ParseFile(path string) (Bibliography, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bibliography: read %s: %w", path, err)
	}
	return Parse(string(doc)), nil
}

// entryKey recognizes a "[key]" header line.
func entryKey(line string) (string, bool) {
	if len(line) < 3 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	key := strings.TrimSpace(line[1 : len(line)-1])
	if key == "" || strings.ContainsAny(key, "[]") {
		return "", false
	}
	return key, true
}

// valid reports whether the record has every required field and a
// well-formed "Last, First" author.
func (r *Record) valid() bool {
	if r.Author == "" || r.Title == "" || r.Year == "" {
		return false
	}
	last, first, ok := splitAuthor(r.Author)
	return ok && last != "" && first != ""
}

// splitAuthor splits "Last, First" on its single comma, trimming both
// halves. More or fewer than one comma means the author is malformed.
func splitAuthor(author string) (last, first string, ok bool) {
	if strings.Count(author, ",") != 1 {
		return "", "", false
	}
	last, first, _ = strings.Cut(author, ",")
	return strings.TrimSpace(last), strings.TrimSpace(first), true
}
