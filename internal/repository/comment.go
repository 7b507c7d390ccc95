package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Fred-Ko/wanted/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) q(q Queryer) Queryer {
	if q != nil {
		return q
	}
	return r.db
}

func (r *commentRepository) Create(ctx context.Context, q Queryer, comment *model.Comment) (*model.Comment, error) {
	var created model.Comment
	err := sqlx.GetContext(ctx, r.q(q), &created, `
		INSERT INTO comments (post_id, parent_id, author, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, parent_id, author, content, created_at, updated_at
	`, comment.PostID, comment.ParentID, comment.Author, comment.Content)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &created, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, `
		SELECT id, post_id, parent_id, author, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

// FindPageByPostID fetches exactly first rows ordered by (created_at, id)
// ascending, starting strictly after the cursor row. The cursor row must
// belong to the same post; otherwise it counts as nonexistent and the page
// is empty.
func (r *commentRepository) FindPageByPostID(ctx context.Context, postID int64, first int, afterID *int64) ([]model.Comment, error) {
	var args []interface{}
	args = append(args, postID)
	where := "post_id = $1"

	if afterID != nil {
		var createdAt time.Time
		err := r.db.GetContext(ctx, &createdAt,
			`SELECT created_at FROM comments WHERE id = $1 AND post_id = $2`,
			*afterID, postID)
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Comment{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve cursor position: %w", err)
		}
		args = append(args, createdAt, *afterID)
		where += fmt.Sprintf(" AND (created_at, id) > ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, first)
	query := fmt.Sprintf(`
		SELECT id, post_id, parent_id, author, content, created_at, updated_at
		FROM comments
		WHERE %s
		ORDER BY created_at ASC, id ASC
		LIMIT $%d
	`, where, len(args))

	var comments []model.Comment
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("find comments page: %w", err)
	}
	return comments, nil
}
