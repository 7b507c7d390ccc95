package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Fred-Ko/wanted/internal/model"
)

// Queryer abstracts over *sqlx.DB and *sqlx.Tx so repository methods can run
// either standalone or inside a caller-supplied transaction. Methods that
// accept a Queryer fall back to the repository's own connection when given nil.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// TxRunner executes a callback within one database transaction. The callback
// receives the transaction as a Queryer; any error rolls everything back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(q Queryer) error) error
}

type PostRepository interface {
	// Create inserts a post and its detail together. The two rows share the
	// transaction in q; a post never exists without its detail.
	Create(ctx context.Context, q Queryer, title, author, passwordHash, content string) (*model.Post, error)
	GetByID(ctx context.Context, q Queryer, id int64) (*model.Post, error)
	// GetByIDs is a batch lookup: duplicates are collapsed and ids with no
	// match are dropped silently.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Post, error)
	// Update applies a partial update; nil fields keep their stored value.
	Update(ctx context.Context, q Queryer, id int64, fields model.UpdatePostFields) (*model.Post, error)
	// DeleteByID removes the detail and then the post. When q is nil the
	// repository wraps both deletes in its own transaction.
	DeleteByID(ctx context.Context, q Queryer, id int64) error
	// FindPage returns up to first+1 rows ordered by (created_at, id)
	// descending, positioned strictly after afterID. A nonexistent afterID
	// yields an empty slice.
	FindPage(ctx context.Context, first int, afterID *int64, filter *PostFilter) ([]model.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, q Queryer, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// FindPageByPostID returns up to first rows for the post ordered by
	// (created_at, id) ascending, positioned strictly after afterID. The
	// cursor row must belong to the same post or the page is empty.
	FindPageByPostID(ctx context.Context, postID int64, first int, afterID *int64) ([]model.Comment, error)
}

type KeywordSubscriptionRepository interface {
	Create(ctx context.Context, keyword, subscriber string) (*model.KeywordSubscription, error)
	// FindByKeywords returns every subscription whose keyword appears in the
	// given set.
	FindByKeywords(ctx context.Context, keywords []string) ([]model.KeywordSubscription, error)
}
