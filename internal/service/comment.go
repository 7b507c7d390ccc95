package service

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/pagination"
	"github.com/Fred-Ko/wanted/internal/repository"
)

// CommentService implements comment commands and queries.
type CommentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository) *CommentService {
	return &CommentService{posts: posts, comments: comments}
}

// AddComment attaches a comment to a post, optionally as a reply. The parent
// comment must exist on the same post. Failures are reported in the result.
func (s *CommentService) AddComment(ctx context.Context, req model.CreateCommentRequest) *model.CommentMutationResult {
	comment, err := s.addComment(ctx, req)
	if err != nil {
		log.Printf("[CommentService] AddComment failed: post=%d err=%v", req.PostID, err)
		return &model.CommentMutationResult{
			Success:   false,
			Message:   fmt.Sprintf("Failed to add comment: %v", err),
			ErrorCode: errorCodeOf(err),
		}
	}

	return &model.CommentMutationResult{
		Success: true,
		Message: fmt.Sprintf("Comment added successfully. ID: %d", comment.ID),
		Data:    comment,
	}
}

func (s *CommentService) addComment(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := validateCreateComment(req); err != nil {
		return nil, err
	}

	if _, err := s.posts.GetByID(ctx, nil, req.PostID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		// A reply must stay on its parent's post.
		if parent.PostID != req.PostID {
			return nil, model.ErrCommentNotFound
		}
	}

	return s.comments.Create(ctx, nil, &model.Comment{
		PostID:   req.PostID,
		ParentID: req.ParentID,
		Author:   req.Author,
		Content:  req.Content,
	})
}

// FindPaginatedCommentsByPostID returns a page of a post's comments in
// chronological order. The post must exist; a malformed or dangling cursor
// yields an empty page.
func (s *CommentService) FindPaginatedCommentsByPostID(ctx context.Context, postID int64, first int, after *string) (pagination.Connection[model.Comment], error) {
	if first <= 0 {
		return pagination.EmptyConnection[model.Comment](), fmt.Errorf("%w: first must be positive", model.ErrInvalidInput)
	}

	if _, err := s.posts.GetByID(ctx, nil, postID); err != nil {
		return pagination.EmptyConnection[model.Comment](), err
	}

	afterID, ok := decodeAfter(after)
	if !ok {
		return pagination.EmptyConnection[model.Comment](), nil
	}

	rows, err := s.comments.FindPageByPostID(ctx, postID, first, afterID)
	if err != nil {
		return pagination.EmptyConnection[model.Comment](), fmt.Errorf("find comments: %w", err)
	}

	return pagination.NewCountedConnection(rows, first, afterID != nil, func(c model.Comment) string {
		return pagination.EncodeCursor(c.ID)
	}), nil
}

func validateCreateComment(req model.CreateCommentRequest) error {
	switch {
	case req.PostID <= 0:
		return fmt.Errorf("%w: post id must be positive", model.ErrInvalidInput)
	case req.Author == "":
		return fmt.Errorf("%w: author is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Author) > model.MaxCommentAuthorLength:
		return fmt.Errorf("%w: author exceeds %d characters", model.ErrInvalidInput, model.MaxCommentAuthorLength)
	case req.Content == "":
		return fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Content) > model.MaxCommentContentLength:
		return fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, model.MaxCommentContentLength)
	case req.ParentID != nil && *req.ParentID <= 0:
		return fmt.Errorf("%w: parent id must be positive", model.ErrInvalidInput)
	}
	return nil
}
