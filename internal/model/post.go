package model

import (
	"errors"
	"time"
)

// Post represents a board post. The password is a bcrypt hash and is never
// serialized back to the client.
type Post struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Author    string     `db:"author" json:"author"`
	Password  string     `db:"password" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// Joined field (post_details table). Every post owns exactly one detail;
	// they are created and deleted together.
	Detail *PostDetail `json:"post_detail,omitempty"`
}

// PostDetail holds the body of a post (1:1 with posts).
type PostDetail struct {
	ID      int64  `db:"id" json:"-"`
	PostID  int64  `db:"post_id" json:"post_id"`
	Content string `db:"content" json:"content"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title    string                  `json:"title"`
	Author   string                  `json:"author"`
	Password string                  `json:"password"`
	Detail   CreatePostDetailRequest `json:"post_detail"`
}

// CreatePostDetailRequest is the nested detail part of a create request.
type CreatePostDetailRequest struct {
	Content string `json:"content"`
}

// UpdatePostRequest is the request body for updating a post. Only supplied
// fields overwrite; the password authorizes the update and is never stored.
type UpdatePostRequest struct {
	ID       int64                    `json:"id"`
	Password string                   `json:"password"`
	Title    *string                  `json:"title,omitempty"`
	Author   *string                  `json:"author,omitempty"`
	Detail   *UpdatePostDetailRequest `json:"post_detail,omitempty"`
}

// UpdatePostDetailRequest carries an optional replacement body.
type UpdatePostDetailRequest struct {
	Content *string `json:"content,omitempty"`
}

// DeletePostRequest is the request body for deleting a post.
type DeletePostRequest struct {
	ID       int64  `json:"id"`
	Password string `json:"password"`
}

// UpdatePostFields is the partial-update payload applied by the repository.
// Nil fields are left untouched.
type UpdatePostFields struct {
	Title   *string
	Author  *string
	Content *string
}

// Post field limits (mirrors the column definitions).
const (
	MaxPostTitleLength    = 255
	MaxPostAuthorLength   = 255
	MaxPostPasswordLength = 255
	MaxPostContentLength  = 3000
)

// Post errors
var (
	ErrPostNotFound = errors.New("Post not found")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)
