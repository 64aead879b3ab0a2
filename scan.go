package pagemill

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// frontMatter mirrors the YAML block content authors write at the top of a
// page. Every field is optional.
type frontMatter struct {
	Title     string   `yaml:"title"`
	Published string   `yaml:"published"`
	Summary   string   `yaml:"summary"`
	Tags      []string `yaml:"tags"`
	Draft     bool     `yaml:"draft"`
}

// ScanContent walks the content tree under root and parses each content
// file's front matter into a MetaMap, collecting a TaggedSet along the way.
// Tags are normalized to lowercase; slug order within a tag follows the walk
// order, so repeated scans of an unchanged tree are identical. Files without
// front matter simply contribute an empty Meta.
func ScanContent(root, ext string) (MetaMap, TaggedSet, error) {
	meta := make(MetaMap)
	tagged := make(TaggedSet)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slug := strings.Trim(strings.TrimSuffix(filepath.ToSlash(rel), ext), "/")
		m, err := readFrontMatter(path)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		meta[slug] = m
		// Draft pages keep their declared tags in the MetaMap but stay out
		// of the TaggedSet, so navigation and per-tag pages never advertise
		// a tag whose listing would be empty.
		if m.Draft {
			return nil
		}
		for _, t := range m.Tags {
			tag := normalizeTag(t)
			if tag == "" {
				continue
			}
			tagged[tag] = append(tagged[tag], slug)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("pagemill: scan content: %w", err)
	}
	return meta, tagged, nil
}

// ReadBody returns a content file's Markdown body with the front matter
// block stripped.
func ReadBody(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var fm frontMatter
	body, err := frontmatter.Parse(f, &fm)
	if err != nil {
		return "", fmt.Errorf("pagemill: parse front matter: %w", err)
	}
	return string(body), nil
}

func readFrontMatter(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()

	var fm frontMatter
	if _, err := frontmatter.Parse(f, &fm); err != nil {
		return Meta{}, fmt.Errorf("parse front matter: %w", err)
	}
	tags := make([]string, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		if tag := normalizeTag(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return Meta{
		Title:     strings.TrimSpace(fm.Title),
		Published: strings.TrimSpace(fm.Published),
		Summary:   strings.TrimSpace(fm.Summary),
		Tags:      tags,
		Draft:     fm.Draft,
	}, nil
}
