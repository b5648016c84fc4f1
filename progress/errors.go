package progress

import "errors"

var (
	ErrScoreOutOfRange = errors.New("progress: score must be between 0 and 100")
	ErrUserRequired    = errors.New("progress: user id is required")
	ErrArticleRequired = errors.New("progress: article id is required")
)
