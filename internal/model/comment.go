package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post. Comments form a forest: ParentID,
// when set, must reference a comment on the same post.
type Comment struct {
	ID        int64      `db:"id" json:"id"`
	PostID    int64      `db:"post_id" json:"post_id"`
	ParentID  *int64     `db:"parent_id" json:"parent_id,omitempty"`
	Author    string     `db:"author" json:"author"`
	Content   string     `db:"content" json:"content"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CreateCommentRequest is the request body for adding a comment.
type CreateCommentRequest struct {
	PostID   int64  `json:"post_id"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// Comment field limits
const (
	MaxCommentContentLength = 3000
	MaxCommentAuthorLength  = 255
)

// Comment errors
var (
	ErrCommentNotFound = errors.New("Comment not found")
)
