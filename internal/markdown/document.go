package markdown

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-kb/articles"
)

// Document is the structured form of one parsed article source file. It
// carries everything the synchronizer needs to reconcile the persisted
// article set.
type Document struct {
	FilePath   string
	Title      string
	Slug       string
	ModifiedAt time.Time
	Tags       []string
	Body       string
	TOC        []articles.TOCEntry
	Quiz       []articles.QuizQuestion
	Checksum   string
}

// BuildDocument parses raw article bytes into a Document. The title is
// derived from the filename (underscores and hyphens humanized to spaces,
// title-cased) and the slug from the title, so both are deterministic for a
// given path.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	tags, body, err := parseTagBlock(source)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse front matter %s: %w", path, err)
	}

	title := humanizeTitle(path)
	slug, err := articles.NormalizeSlug(title)
	if err != nil {
		return nil, fmt.Errorf("markdown: slug for %s: %w", path, err)
	}

	sum := sha256.Sum256(source)

	return &Document{
		FilePath:   path,
		Title:      title,
		Slug:       slug,
		ModifiedAt: modified.UTC(),
		Tags:       tags,
		Body:       string(body),
		TOC:        extractTOC(body),
		Quiz:       []articles.QuizQuestion{},
		Checksum:   hex.EncodeToString(sum[:]),
	}, nil
}

// parseTagBlock extracts the optional leading tag block, a front-matter
// section whose entries are a plain YAML sequence:
//
//	---
//	- go
//	- databases
//	---
//
// The returned body has the block removed.
func parseTagBlock(source []byte) ([]string, []byte, error) {
	var tags []string

	body, err := frontmatter.Parse(bytes.NewReader(source), &tags)
	if err != nil {
		return nil, nil, err
	}

	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned, body, nil
}

// extractTOC records one entry per heading line: 1-6 leading '#' characters
// followed by non-'#' text. Lines with zero or more than six '#' and
// headings whose text trims to nothing are excluded.
func extractTOC(body []byte) []articles.TOCEntry {
	toc := []articles.TOCEntry{}

	for _, line := range strings.Split(string(body), "\n") {
		stripped := strings.TrimLeft(line, " \t")
		level := 0
		for level < len(stripped) && stripped[level] == '#' {
			level++
		}
		if level == 0 || level > 6 {
			continue
		}

		text := strings.TrimSpace(stripped[level:])
		if text == "" {
			continue
		}

		toc = append(toc, articles.TOCEntry{
			Level:  fmt.Sprintf("h%d", level),
			Text:   text,
			Anchor: strings.ReplaceAll(text, " ", "_"),
		})
	}

	return toc
}

// humanizeTitle turns a file path stem into a display title: underscores and
// hyphens become spaces, and each word is title-cased.
func humanizeTitle(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
