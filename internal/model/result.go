package model

// Error codes attached to failed mutation results.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodePostNotFound    = "POST_NOT_FOUND"
	ErrCodeCommentNotFound = "COMMENT_NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// PostMutationResult is the uniform response for post commands. Commands
// report failures through Success/Message/ErrorCode instead of raising, so
// the handler layer never has to interpret errors itself.
type PostMutationResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	Data      *Post  `json:"data,omitempty"`
}

// CommentMutationResult is the uniform response for comment commands.
type CommentMutationResult struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ErrorCode string   `json:"error_code,omitempty"`
	Data      *Comment `json:"data,omitempty"`
}
