// Package service implements the application's commands and queries on top
// of the repository layer. Commands run inside a transaction, stage domain
// events in a per-invocation buffer, and publish them only after commit.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/pagination"
	"github.com/Fred-Ko/wanted/internal/password"
	"github.com/Fred-Ko/wanted/internal/queue"
	"github.com/Fred-Ko/wanted/internal/repository"
)

// PostService implements post commands and queries.
type PostService struct {
	posts     repository.PostRepository
	comments  repository.CommentRepository
	tx        repository.TxRunner
	publisher queue.Publisher
	hasher    *password.Hasher
}

// NewPostService creates a new PostService.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	tx repository.TxRunner,
	publisher queue.Publisher,
	hasher *password.Hasher,
) *PostService {
	return &PostService{
		posts:     posts,
		comments:  comments,
		tx:        tx,
		publisher: publisher,
		hasher:    hasher,
	}
}

// CreatePost creates a post together with its detail and publishes a
// PostCreatedEvent after the transaction commits. Failures are reported in
// the result, never raised.
func (s *PostService) CreatePost(ctx context.Context, req model.CreatePostRequest) *model.PostMutationResult {
	post, err := s.createPost(ctx, req)
	if err != nil {
		log.Printf("[PostService] CreatePost failed: %v", err)
		return &model.PostMutationResult{
			Success:   false,
			Message:   fmt.Sprintf("Failed to create post: %v", err),
			ErrorCode: errorCodeOf(err),
		}
	}

	return &model.PostMutationResult{
		Success: true,
		Message: fmt.Sprintf("Post created successfully. ID: %d", post.ID),
		Data:    post,
	}
}

func (s *PostService) createPost(ctx context.Context, req model.CreatePostRequest) (*model.Post, error) {
	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var created *model.Post
	var buf queue.EventBuffer

	err = s.tx.RunInTx(ctx, func(q repository.Queryer) error {
		post, err := s.posts.Create(ctx, q, req.Title, req.Author, hash, req.Detail.Content)
		if err != nil {
			return err
		}

		buf.Add(queue.PostCreatedEvent{
			ID:        post.ID,
			Title:     post.Title,
			Author:    post.Author,
			Content:   post.Detail.Content,
			CreatedAt: post.CreatedAt,
		})

		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &buf)
	return created, nil
}

// UpdatePost applies a partial update after verifying the post's password.
// A PostUpdatedEvent is published after commit; its Content field is set only
// when the body actually changed.
func (s *PostService) UpdatePost(ctx context.Context, req model.UpdatePostRequest) *model.PostMutationResult {
	post, err := s.updatePost(ctx, req)
	if err != nil {
		log.Printf("[PostService] UpdatePost failed: id=%d err=%v", req.ID, err)
		return &model.PostMutationResult{
			Success:   false,
			Message:   fmt.Sprintf("Failed to update post: %v", err),
			ErrorCode: errorCodeOf(err),
		}
	}

	return &model.PostMutationResult{
		Success: true,
		Message: fmt.Sprintf("Post updated successfully. ID: %d", post.ID),
		Data:    post,
	}
}

func (s *PostService) updatePost(ctx context.Context, req model.UpdatePostRequest) (*model.Post, error) {
	if err := validateUpdatePost(req); err != nil {
		return nil, err
	}

	var updated *model.Post
	var buf queue.EventBuffer

	err := s.tx.RunInTx(ctx, func(q repository.Queryer) error {
		post, err := s.posts.GetByID(ctx, q, req.ID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(req.Password, post.Password) {
			return model.ErrUnauthorized
		}

		fields := model.UpdatePostFields{Title: req.Title, Author: req.Author}
		if req.Detail != nil {
			fields.Content = req.Detail.Content
		}

		post, err = s.posts.Update(ctx, q, req.ID, fields)
		if err != nil {
			return err
		}

		event := queue.PostUpdatedEvent{
			ID:        post.ID,
			Title:     post.Title,
			Author:    post.Author,
			UpdatedAt: time.Now().UTC(),
			Content:   fields.Content,
		}
		if post.UpdatedAt != nil {
			event.UpdatedAt = *post.UpdatedAt
		}
		buf.Add(event)

		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &buf)
	return updated, nil
}

// DeletePost removes a post, its detail, and its comments after verifying
// the post's password.
func (s *PostService) DeletePost(ctx context.Context, req model.DeletePostRequest) *model.PostMutationResult {
	if err := s.deletePost(ctx, req); err != nil {
		log.Printf("[PostService] DeletePost failed: id=%d err=%v", req.ID, err)
		return &model.PostMutationResult{
			Success:   false,
			Message:   fmt.Sprintf("Failed to delete post: %v", err),
			ErrorCode: errorCodeOf(err),
		}
	}

	return &model.PostMutationResult{
		Success: true,
		Message: fmt.Sprintf("Post deleted successfully. ID: %d", req.ID),
	}
}

func (s *PostService) deletePost(ctx context.Context, req model.DeletePostRequest) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", model.ErrInvalidInput)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}

	return s.tx.RunInTx(ctx, func(q repository.Queryer) error {
		post, err := s.posts.GetByID(ctx, q, req.ID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(req.Password, post.Password) {
			return model.ErrUnauthorized
		}
		return s.posts.DeleteByID(ctx, q, req.ID)
	})
}

// FindPaginatedPosts returns a page of posts in reverse chronological order.
// A malformed or dangling cursor yields an empty page rather than an error.
func (s *PostService) FindPaginatedPosts(ctx context.Context, first int, after *string, filter *repository.PostFilter) (pagination.Connection[model.Post], error) {
	if first <= 0 {
		return pagination.EmptyConnection[model.Post](), fmt.Errorf("%w: first must be positive", model.ErrInvalidInput)
	}

	afterID, ok := decodeAfter(after)
	if !ok {
		return pagination.EmptyConnection[model.Post](), nil
	}

	rows, err := s.posts.FindPage(ctx, first, afterID, filter)
	if err != nil {
		return pagination.EmptyConnection[model.Post](), fmt.Errorf("find posts: %w", err)
	}

	return pagination.NewLookaheadConnection(rows, first, afterID != nil, func(p model.Post) string {
		return pagination.EncodeCursor(p.ID)
	}), nil
}

// FindByID returns a single post with its detail.
func (s *PostService) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", model.ErrInvalidInput)
	}
	return s.posts.GetByID(ctx, nil, id)
}

// FindManyPostDetailByIDs batch-loads post details. Duplicate ids collapse
// and missing ids are skipped; the result is ordered by post id.
func (s *PostService) FindManyPostDetailByIDs(ctx context.Context, ids []int64) ([]model.PostDetail, error) {
	posts, err := s.posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find post details: %w", err)
	}

	details := make([]model.PostDetail, 0, len(posts))
	for _, post := range posts {
		if post.Detail != nil {
			details = append(details, *post.Detail)
		}
	}
	return details, nil
}

// publishEvents drains the buffer after the owning transaction has committed
// and publishes each event. Publication is best-effort: a broker failure is
// logged and the event dropped, the command itself already succeeded.
func (s *PostService) publishEvents(ctx context.Context, buf *queue.EventBuffer) {
	for _, event := range buf.Drain() {
		if _, err := s.publisher.Publish(ctx, event.Kind(), event); err != nil {
			log.Printf("[PostService] publish %s failed: %v", event.Kind(), err)
		}
	}
}

// decodeAfter parses an optional cursor. ok is false only when a cursor was
// supplied and is malformed.
func decodeAfter(after *string) (*int64, bool) {
	if after == nil || *after == "" {
		return nil, true
	}
	id, ok := pagination.DecodeCursor(*after)
	if !ok {
		return nil, false
	}
	return &id, true
}

func validateCreatePost(req model.CreatePostRequest) error {
	switch {
	case req.Title == "":
		return fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Title) > model.MaxPostTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", model.ErrInvalidInput, model.MaxPostTitleLength)
	case req.Author == "":
		return fmt.Errorf("%w: author is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Author) > model.MaxPostAuthorLength:
		return fmt.Errorf("%w: author exceeds %d characters", model.ErrInvalidInput, model.MaxPostAuthorLength)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Password) > model.MaxPostPasswordLength:
		return fmt.Errorf("%w: password exceeds %d characters", model.ErrInvalidInput, model.MaxPostPasswordLength)
	case req.Detail.Content == "":
		return fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	case utf8.RuneCountInString(req.Detail.Content) > model.MaxPostContentLength:
		return fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, model.MaxPostContentLength)
	}
	return nil
}

func validateUpdatePost(req model.UpdatePostRequest) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", model.ErrInvalidInput)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}
	if req.Title != nil {
		if *req.Title == "" {
			return fmt.Errorf("%w: title must not be empty", model.ErrInvalidInput)
		}
		if utf8.RuneCountInString(*req.Title) > model.MaxPostTitleLength {
			return fmt.Errorf("%w: title exceeds %d characters", model.ErrInvalidInput, model.MaxPostTitleLength)
		}
	}
	if req.Author != nil {
		if *req.Author == "" {
			return fmt.Errorf("%w: author must not be empty", model.ErrInvalidInput)
		}
		if utf8.RuneCountInString(*req.Author) > model.MaxPostAuthorLength {
			return fmt.Errorf("%w: author exceeds %d characters", model.ErrInvalidInput, model.MaxPostAuthorLength)
		}
	}
	if req.Detail != nil && req.Detail.Content != nil {
		if *req.Detail.Content == "" {
			return fmt.Errorf("%w: content must not be empty", model.ErrInvalidInput)
		}
		if utf8.RuneCountInString(*req.Detail.Content) > model.MaxPostContentLength {
			return fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, model.MaxPostContentLength)
		}
	}
	return nil
}

// errorCodeOf maps sentinel errors to the codes carried in mutation results.
func errorCodeOf(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return model.ErrCodeInvalidInput
	case errors.Is(err, model.ErrPostNotFound):
		return model.ErrCodePostNotFound
	case errors.Is(err, model.ErrCommentNotFound):
		return model.ErrCodeCommentNotFound
	case errors.Is(err, model.ErrUnauthorized):
		return model.ErrCodeUnauthorized
	default:
		return model.ErrCodeInternal
	}
}
