package markdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-kb/articles"
)

// DefaultQuizDir is the fixed sibling subfolder searched for companion quiz
// files: an article at docs/intro.md reads its quiz from
// docs/quizzes/intro.json.
const DefaultQuizDir = "quizzes"

// loadQuiz reads the companion quiz definition for an article. A missing
// file yields an empty quiz; a malformed file is an error the caller records
// against the article's path.
func loadQuiz(fsys fs.FS, articlePath, quizDir string) ([]articles.QuizQuestion, error) {
	if strings.TrimSpace(quizDir) == "" {
		quizDir = DefaultQuizDir
	}

	base := path.Base(articlePath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	quizPath := path.Join(path.Dir(articlePath), quizDir, stem+".json")

	data, err := fs.ReadFile(fsys, quizPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []articles.QuizQuestion{}, nil
		}
		return nil, fmt.Errorf("markdown: read quiz %s: %w", quizPath, err)
	}

	var questions []articles.QuizQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("markdown: decode quiz %s: %w", quizPath, err)
	}

	for i, question := range questions {
		if strings.TrimSpace(question.Question) == "" {
			return nil, fmt.Errorf("markdown: quiz %s: question %d has no text", quizPath, i+1)
		}
		if question.Answer < 0 || question.Answer >= len(question.Options) {
			return nil, fmt.Errorf("markdown: quiz %s: question %d answer index out of range", quizPath, i+1)
		}
	}

	if questions == nil {
		questions = []articles.QuizQuestion{}
	}
	return questions, nil
}
