package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-kb/articles"
)

// Read is a durable marker that a user has opened an article at least once.
// The (user_id, article_id) pair is unique; marking is idempotent.
type Read struct {
	bun.BaseModel `bun:"table:reads,alias:r"`

	ID        uuid.UUID `bun:",pk,type:uuid"                                        json:"id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid,unique:reads_user_article"  json:"user_id"`
	ArticleID uuid.UUID `bun:"article_id,notnull,type:uuid,unique:reads_user_article" json:"article_id"`
	ReadAt    time.Time `bun:"read_at,nullzero,default:current_timestamp"           json:"read_at"`
}

// QuizAttempt records one scored quiz submission. Attempts are append-only;
// every attempt is retained and feeds the profile average.
type QuizAttempt struct {
	bun.BaseModel `bun:"table:quiz_attempts,alias:qa"`

	ID        uuid.UUID `bun:",pk,type:uuid"                 json:"id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"     json:"user_id"`
	ArticleID uuid.UUID `bun:"article_id,notnull,type:uuid"  json:"article_id"`
	Score     int       `bun:"score,notnull"                 json:"score"`
	TakenAt   time.Time `bun:"taken_at,nullzero,default:current_timestamp" json:"taken_at"`
}

// Profile aggregates a user's reading history and quiz performance.
type Profile struct {
	ReadArticles []*articles.Article `json:"read_articles"`
	QuizAttempts []*QuizAttempt      `json:"quiz_attempts"`
	AverageScore int                 `json:"average_score"`
}
