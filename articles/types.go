package articles

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Article is the canonical persisted record for one markdown source file.
// The synchronizer replaces every content-bearing field as a unit on each
// pass; ID, FilePath, and CreatedAt are stable across re-syncs so Read and
// QuizAttempt references survive.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID         uuid.UUID      `bun:",pk,type:uuid"                  json:"id"`
	FilePath   string         `bun:"file_path,notnull"              json:"file_path"`
	Title      string         `bun:"title,notnull"                  json:"title"`
	Slug       string         `bun:"slug,notnull,unique"            json:"slug"`
	ModifiedAt time.Time      `bun:"modified_at,notnull"            json:"modified_at"`
	Tags       string         `bun:"tags,notnull,default:''"        json:"tags"`
	Body       string         `bun:"body,notnull,default:''"        json:"body"`
	TOC        []TOCEntry     `bun:"toc,type:jsonb,notnull"         json:"toc"`
	Quiz       []QuizQuestion `bun:"quiz,type:jsonb,notnull"        json:"quiz"`
	Checksum   string         `bun:"checksum,notnull,default:''"    json:"checksum"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TagList splits the comma-joined tag column into individual tags.
func (a *Article) TagList() []string {
	if a == nil || strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// JoinTags produces the comma-joined representation stored on the record.
func JoinTags(tags []string) string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(trimmed, ",")
}

// TOCEntry is one heading extracted from an article body. Level is the
// heading tag name ("h1".."h6"), Anchor the heading text with spaces
// replaced by underscores.
type TOCEntry struct {
	Level  string `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// QuizQuestion is one entry of an article's quiz definition, loaded from the
// companion quiz file. Answer is the zero-based index into Options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}
