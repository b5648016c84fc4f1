package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-kb/pkg/interfaces"
)

// LoaderConfig configures how markdown files are discovered within a base
// directory.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// QuizDir names the sibling subfolder holding companion quiz files.
	QuizDir string
}

// Loader turns filesystem paths into parsed documents. Unreadable or
// unparsable files never fail the walk; they are reported as per-file errors
// so the rest of the directory still syncs.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
	quizDir   string
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	quizDir := cfg.QuizDir
	if strings.TrimSpace(quizDir) == "" {
		quizDir = DefaultQuizDir
	}

	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
		quizDir:   quizDir,
	}
}

// LoadFile reads and parses a single article source file along with its
// companion quiz.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := filepath.ToSlash(filepath.Clean(path))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}

	quiz, err := loadQuiz(l.fs, rel, l.quizDir)
	if err != nil {
		// The article still syncs; only the quiz definition is dropped.
		return doc, err
	}
	doc.Quiz = quiz

	return doc, nil
}

// LoadDirectory discovers article sources under dir and returns parsed
// documents sorted by path, plus per-file errors for sources that could not
// be fully loaded.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, []interfaces.SyncError, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	root := filepath.ToSlash(filepath.Clean(dir))
	if root == "" {
		root = "."
	}

	var docs []*Document
	var fileErrors []interfaces.SyncError

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			fileErrors = append(fileErrors, interfaces.SyncError{Path: path, Reason: walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !l.recursive && filepath.Clean(path) != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if match, err := filepath.Match(l.pattern, filepath.Base(rel)); err != nil || !match {
			return nil
		}

		doc, err := l.LoadFile(ctx, rel)
		if err != nil {
			fileErrors = append(fileErrors, interfaces.SyncError{Path: rel, Reason: err.Error()})
		}
		if doc != nil {
			docs = append(docs, doc)
		}
		return nil
	})

	if walkErr != nil {
		return nil, fileErrors, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})

	return docs, fileErrors, nil
}
