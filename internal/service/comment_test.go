package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/repository"
)

func postExists(t *testing.T, id int64) *mockPostRepository {
	t.Helper()
	return &mockPostRepository{
		getByIDFn: func(ctx context.Context, q repository.Queryer, gotID int64) (*model.Post, error) {
			if gotID == id {
				return storedPost(t, id, "hunter2"), nil
			}
			return nil, model.ErrPostNotFound
		},
	}
}

func validCommentRequest() model.CreateCommentRequest {
	return model.CreateCommentRequest{
		PostID:  1,
		Author:  "lee",
		Content: "nice post",
	}
}

// =============================================================================
// ADD COMMENT
// =============================================================================

func TestCommentService_AddComment_Success(t *testing.T) {
	comments := &mockCommentRepository{
		createFn: func(ctx context.Context, q repository.Queryer, comment *model.Comment) (*model.Comment, error) {
			created := *comment
			created.ID = 3
			created.CreatedAt = time.Now()
			return &created, nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	result := svc.AddComment(context.Background(), validCommentRequest())

	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if !strings.Contains(result.Message, "ID: 3") {
		t.Errorf("message = %q, want it to mention the new id", result.Message)
	}
	if result.Data == nil || result.Data.PostID != 1 {
		t.Fatal("expected created comment in result data")
	}
}

func TestCommentService_AddComment_PostMissing(t *testing.T) {
	comments := &mockCommentRepository{}
	svc := NewCommentService(postExists(t, 1), comments)

	req := validCommentRequest()
	req.PostID = 404
	result := svc.AddComment(context.Background(), req)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != model.ErrCodePostNotFound {
		t.Errorf("error code = %q, want %q", result.ErrorCode, model.ErrCodePostNotFound)
	}
	if comments.createCalls != 0 {
		t.Error("comment must not be created on a missing post")
	}
}

func TestCommentService_AddComment_ReplySuccess(t *testing.T) {
	parentID := int64(2)
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: 2, PostID: 1}, nil
		},
		createFn: func(ctx context.Context, q repository.Queryer, comment *model.Comment) (*model.Comment, error) {
			if comment.ParentID == nil || *comment.ParentID != 2 {
				t.Errorf("parent id = %v, want 2", comment.ParentID)
			}
			created := *comment
			created.ID = 7
			return &created, nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	req := validCommentRequest()
	req.ParentID = &parentID
	result := svc.AddComment(context.Background(), req)

	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
}

func TestCommentService_AddComment_ParentOnAnotherPost(t *testing.T) {
	parentID := int64(2)
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			// Parent exists but hangs off a different post.
			return &model.Comment{ID: 2, PostID: 99}, nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	req := validCommentRequest()
	req.ParentID = &parentID
	result := svc.AddComment(context.Background(), req)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != model.ErrCodeCommentNotFound {
		t.Errorf("error code = %q, want %q", result.ErrorCode, model.ErrCodeCommentNotFound)
	}
	if comments.createCalls != 0 {
		t.Error("cross-post replies must not be created")
	}
}

func TestCommentService_AddComment_ParentMissing(t *testing.T) {
	parentID := int64(123)
	svc := NewCommentService(postExists(t, 1), &mockCommentRepository{})

	req := validCommentRequest()
	req.ParentID = &parentID
	result := svc.AddComment(context.Background(), req)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != model.ErrCodeCommentNotFound {
		t.Errorf("error code = %q, want %q", result.ErrorCode, model.ErrCodeCommentNotFound)
	}
}

func TestCommentService_AddComment_ContentTooLong(t *testing.T) {
	comments := &mockCommentRepository{}
	svc := NewCommentService(postExists(t, 1), comments)

	req := validCommentRequest()
	req.Content = strings.Repeat("x", model.MaxCommentContentLength+1)
	result := svc.AddComment(context.Background(), req)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != model.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", result.ErrorCode, model.ErrCodeInvalidInput)
	}
	if comments.createCalls != 0 {
		t.Error("repository should not be reached on validation failure")
	}
}

// =============================================================================
// PAGINATED COMMENTS
// =============================================================================

func pageComments(postID int64, ids ...int64) []model.Comment {
	comments := make([]model.Comment, len(ids))
	for i, id := range ids {
		comments[i] = model.Comment{
			ID:        id,
			PostID:    postID,
			Author:    "lee",
			Content:   "comment",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
	}
	return comments
}

func TestCommentService_FindPaginatedComments_PostMissing(t *testing.T) {
	svc := NewCommentService(postExists(t, 1), &mockCommentRepository{})

	_, err := svc.FindPaginatedCommentsByPostID(context.Background(), 404, 3, nil)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestCommentService_FindPaginatedComments_FirstMustBePositive(t *testing.T) {
	svc := NewCommentService(postExists(t, 1), &mockCommentRepository{})

	_, err := svc.FindPaginatedCommentsByPostID(context.Background(), 1, -1, nil)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCommentService_FindPaginatedComments_FullPageImpliesNext(t *testing.T) {
	comments := &mockCommentRepository{
		findPageFn: func(ctx context.Context, postID int64, first int, afterID *int64) ([]model.Comment, error) {
			return pageComments(1, 1, 2, 3), nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	page, err := svc.FindPaginatedCommentsByPostID(context.Background(), 1, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Count heuristic: a full page always claims a next page.
	if !page.PageInfo.HasNextPage {
		t.Error("full page should report a next page")
	}
	if page.PageInfo.HasPreviousPage {
		t.Error("no cursor supplied, so no previous page")
	}
}

func TestCommentService_FindPaginatedComments_ShortPageIsLast(t *testing.T) {
	comments := &mockCommentRepository{
		findPageFn: func(ctx context.Context, postID int64, first int, afterID *int64) ([]model.Comment, error) {
			if afterID == nil || *afterID != 2 {
				t.Errorf("afterID = %v, want 2", afterID)
			}
			return pageComments(1, 3), nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	after := "2"
	page, err := svc.FindPaginatedCommentsByPostID(context.Background(), 1, 3, &after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.PageInfo.HasNextPage {
		t.Error("short page means no next page")
	}
	if !page.PageInfo.HasPreviousPage {
		t.Error("cursor was supplied, so there is a previous page")
	}
}

func TestCommentService_FindPaginatedComments_MalformedCursorYieldsEmptyPage(t *testing.T) {
	comments := &mockCommentRepository{}
	svc := NewCommentService(postExists(t, 1), comments)

	after := "zzz"
	page, err := svc.FindPaginatedCommentsByPostID(context.Background(), 1, 3, &after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(page.Edges))
	}
	if page.PageInfo.HasNextPage || page.PageInfo.HasPreviousPage {
		t.Error("empty page must report both flags false")
	}
	if comments.pageCalls != 0 {
		t.Error("repository should not be queried for a malformed cursor")
	}
}

// keysetComments builds a fixed thread already in page order (created_at asc,
// id asc) with colliding timestamps so the id tie-break matters.
func keysetComments(postID int64) []model.Comment {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := func(n int) time.Time { return base.Add(time.Duration(n) * time.Minute) }

	specs := []struct {
		id int64
		at time.Time
	}{
		{1, ts(0)}, {2, ts(0)}, {3, ts(0)},
		{4, ts(1)}, {5, ts(1)},
		{6, ts(2)}, {7, ts(2)},
	}

	comments := make([]model.Comment, len(specs))
	for i, s := range specs {
		comments[i] = model.Comment{
			ID:        s.id,
			PostID:    postID,
			Author:    "lee",
			Content:   "comment",
			CreatedAt: s.at,
		}
	}
	return comments
}

func TestCommentService_FindPaginatedComments_CursorChainingReconstructsThread(t *testing.T) {
	ordered := keysetComments(1)
	comments := &mockCommentRepository{
		// Mimics the repository's keyset query: up to first rows strictly
		// after the cursor row, empty page on a dangling cursor.
		findPageFn: func(ctx context.Context, postID int64, first int, afterID *int64) ([]model.Comment, error) {
			start := 0
			if afterID != nil {
				idx := -1
				for i, c := range ordered {
					if c.ID == *afterID {
						idx = i
						break
					}
				}
				if idx == -1 {
					return []model.Comment{}, nil
				}
				start = idx + 1
			}
			end := start + first
			if end > len(ordered) {
				end = len(ordered)
			}
			return append([]model.Comment(nil), ordered[start:end]...), nil
		},
	}
	svc := NewCommentService(postExists(t, 1), comments)

	var got []int64
	var after *string
	for page := 0; ; page++ {
		if page > len(ordered) {
			t.Fatal("pagination did not terminate")
		}

		conn, err := svc.FindPaginatedCommentsByPostID(context.Background(), 1, 3, after)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		for _, edge := range conn.Edges {
			got = append(got, edge.Node.ID)
		}
		if !conn.PageInfo.HasNextPage {
			break
		}
		after = conn.PageInfo.EndCursor
	}

	// The count heuristic can claim one spurious trailing page, but the
	// concatenation must still be the full thread, in order, without gaps
	// or duplicates.
	if len(got) != len(ordered) {
		t.Fatalf("reconstructed %d comments, want %d (%v)", len(got), len(ordered), got)
	}
	for i, c := range ordered {
		if got[i] != c.ID {
			t.Fatalf("position %d = id %d, want %d (full: %v)", i, got[i], c.ID, got)
		}
	}
}
