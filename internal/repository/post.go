package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Fred-Ko/wanted/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// q resolves the effective Queryer: the caller's transaction when supplied,
// otherwise the repository's own connection.
func (r *postRepository) q(q Queryer) Queryer {
	if q != nil {
		return q
	}
	return r.db
}

// postRow scans a post joined with its detail.
type postRow struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	Author    string     `db:"author"`
	Password  string     `db:"password"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	DetailID      int64  `db:"detail.id"`
	DetailContent string `db:"detail.content"`
}

func (row postRow) toPost() model.Post {
	return model.Post{
		ID:        row.ID,
		Title:     row.Title,
		Author:    row.Author,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Detail: &model.PostDetail{
			ID:      row.DetailID,
			PostID:  row.ID,
			Content: row.DetailContent,
		},
	}
}

const postSelectColumns = `
	p.id, p.title, p.author, p.password, p.created_at, p.updated_at,
	d.id AS "detail.id", d.content AS "detail.content"`

// Create inserts a post and its detail as two statements on the same Queryer.
func (r *postRepository) Create(ctx context.Context, q Queryer, title, author, passwordHash, content string) (*model.Post, error) {
	q = r.q(q)

	var post model.Post
	err := sqlx.GetContext(ctx, q, &post, `
		INSERT INTO posts (title, author, password)
		VALUES ($1, $2, $3)
		RETURNING id, title, author, password, created_at, updated_at
	`, title, author, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	var detail model.PostDetail
	err = sqlx.GetContext(ctx, q, &detail, `
		INSERT INTO post_details (post_id, content)
		VALUES ($1, $2)
		RETURNING id, post_id, content
	`, post.ID, content)
	if err != nil {
		return nil, fmt.Errorf("insert post detail: %w", err)
	}

	post.Detail = &detail
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, q Queryer, id int64) (*model.Post, error) {
	var row postRow
	err := sqlx.GetContext(ctx, r.q(q), &row, `
		SELECT `+postSelectColumns+`
		FROM posts p
		JOIN post_details d ON d.post_id = p.id
		WHERE p.id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// GetByIDs is the batch lookup behind findManyPostDetailByIds. Duplicate ids
// collapse and misses are dropped, never reported as errors.
func (r *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Post, error) {
	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) == 0 {
		return []model.Post{}, nil
	}

	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+postSelectColumns+`
		FROM posts p
		JOIN post_details d ON d.post_id = p.id
		WHERE p.id = ANY($1)
		ORDER BY p.id
	`, pq.Array(distinct))
	if err != nil {
		return nil, fmt.Errorf("get posts by ids: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// Update applies the supplied fields only. updated_at is always advanced so a
// detail-only update still marks the post as modified.
func (r *postRepository) Update(ctx context.Context, q Queryer, id int64, fields model.UpdatePostFields) (*model.Post, error) {
	q = r.q(q)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	if fields.Title != nil {
		args = append(args, *fields.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if fields.Author != nil {
		args = append(args, *fields.Author)
		sets = append(sets, fmt.Sprintf("author = $%d", len(args)))
	}
	args = append(args, id)

	result, err := q.ExecContext(ctx, fmt.Sprintf(
		`UPDATE posts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args),
	), args...)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, model.ErrPostNotFound
	}

	if fields.Content != nil {
		_, err = q.ExecContext(ctx,
			`UPDATE post_details SET content = $1 WHERE post_id = $2`,
			*fields.Content, id)
		if err != nil {
			return nil, fmt.Errorf("update post detail: %w", err)
		}
	}

	return r.GetByID(ctx, q, id)
}

// DeleteByID removes the post's comments, its detail, and then the post
// itself. All three share one transaction: the caller's, or a
// repository-local one when q is nil.
func (r *postRepository) DeleteByID(ctx context.Context, q Queryer, id int64) error {
	if q == nil {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := r.deleteInTx(ctx, tx, id); err != nil {
			return err
		}
		return tx.Commit()
	}
	return r.deleteInTx(ctx, q, id)
}

func (r *postRepository) deleteInTx(ctx context.Context, q Queryer, id int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM post_details WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post detail: %w", err)
	}

	result, err := q.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// FindPage fetches first+1 rows ordered by (created_at, id) descending for
// lookahead pagination. The cursor row's position is resolved first; a cursor
// pointing at no row short-circuits to an empty page.
func (r *postRepository) FindPage(ctx context.Context, first int, afterID *int64, filter *PostFilter) ([]model.Post, error) {
	var args []interface{}
	where := "TRUE"

	if afterID != nil {
		var createdAt time.Time
		err := r.db.GetContext(ctx, &createdAt, `SELECT created_at FROM posts WHERE id = $1`, *afterID)
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Post{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve cursor position: %w", err)
		}
		args = append(args, createdAt, *afterID)
		where = fmt.Sprintf("(p.created_at, p.id) < ($%d, $%d)", len(args)-1, len(args))
	}

	if filter != nil {
		where += " AND " + filter.Compile(&args)
	}

	args = append(args, first+1)
	query := fmt.Sprintf(`
		SELECT `+postSelectColumns+`
		FROM posts p
		JOIN post_details d ON d.post_id = p.id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d
	`, where, len(args))

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find posts page: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}
