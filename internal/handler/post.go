// Package handler exposes the services over HTTP. Handlers only parse
// requests and translate errors; all domain decisions live in the services.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Fred-Ko/wanted/internal/httputil"
	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/repository"
	"github.com/Fred-Ko/wanted/internal/service"
)

// DefaultPageSize is used when the first query param is absent.
const DefaultPageSize = 10

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /posts
// Creates a post with its detail. The outcome, success or not, is reported
// in the mutation result body.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result := h.postService.CreatePost(r.Context(), req)
	httputil.WriteJSON(w, mutationStatus(result.Success, result.ErrorCode, http.StatusCreated), result)
}

// Update handles PATCH /posts/:id
// Applies a partial update; the body's password authorizes it.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	req.ID = postID

	result := h.postService.UpdatePost(r.Context(), req)
	httputil.WriteJSON(w, mutationStatus(result.Success, result.ErrorCode, http.StatusOK), result)
}

// Delete handles DELETE /posts/:id
// Removes the post, its detail, and its comments.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req model.DeletePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	req.ID = postID

	result := h.postService.DeletePost(r.Context(), req)
	httputil.WriteJSON(w, mutationStatus(result.Success, result.ErrorCode, http.StatusOK), result)
}

// GetByID handles GET /posts/:id
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.postService.FindByID(r.Context(), postID)
	if err != nil {
		writeQueryError(w, err, "post", postID)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// List handles GET /posts
// Query params: first, after, title, author. title/author are shorthand for
// a simple equality filter.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	first, after, ok := parsePageParams(w, r)
	if !ok {
		return
	}

	var filter *repository.PostFilter
	title := r.URL.Query().Get("title")
	author := r.URL.Query().Get("author")
	if title != "" || author != "" {
		filter = &repository.PostFilter{}
		if title != "" {
			filter.Title = &title
		}
		if author != "" {
			filter.Author = &author
		}
	}

	h.writePage(w, r, first, after, filter)
}

// SearchRequest is the body of POST /posts/search.
type SearchRequest struct {
	Filter *repository.PostFilter `json:"filter,omitempty"`
	First  int                    `json:"first"`
	After  *string                `json:"after,omitempty"`
}

// Search handles POST /posts/search
// Accepts a structured filter with and/or/not combinators.
func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.First == 0 {
		req.First = DefaultPageSize
	}

	h.writePage(w, r, req.First, req.After, req.Filter)
}

func (h *PostHandler) writePage(w http.ResponseWriter, r *http.Request, first int, after *string, filter *repository.PostFilter) {
	page, err := h.postService.FindPaginatedPosts(r.Context(), first, after, filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		log.Printf("[ERROR] List posts handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// GetDetails handles GET /post-details?ids=1,2,3
// Batch-loads post bodies; unknown ids are skipped.
func (h *PostHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		httputil.WriteBadRequest(w, "ids parameter is required")
		return
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid ids parameter")
			return
		}
		ids = append(ids, id)
	}

	details, err := h.postService.FindManyPostDetailByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("[ERROR] Get post details handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get post details")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, details)
}

// parseIDParam reads the {id} URL param. Writes a 400 and returns false on
// a malformed id.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return 0, false
	}
	return id, true
}

// parsePageParams reads first/after query params with defaults.
func parsePageParams(w http.ResponseWriter, r *http.Request) (int, *string, bool) {
	first := DefaultPageSize
	if f := r.URL.Query().Get("first"); f != "" {
		parsed, err := strconv.Atoi(f)
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid first parameter")
			return 0, nil, false
		}
		first = parsed
	}

	var after *string
	if a := r.URL.Query().Get("after"); a != "" {
		after = &a
	}

	return first, after, true
}

// mutationStatus picks the HTTP status for a mutation result. Successful
// mutations use okStatus; failures map their error code.
func mutationStatus(success bool, errorCode string, okStatus int) int {
	if success {
		return okStatus
	}
	switch errorCode {
	case model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodePostNotFound, model.ErrCodeCommentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeQueryError translates query-path errors into HTTP responses.
func writeQueryError(w http.ResponseWriter, err error, entity string, id int64) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		httputil.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrPostNotFound):
		httputil.WriteNotFound(w, "Post not found")
	case errors.Is(err, model.ErrCommentNotFound):
		httputil.WriteNotFound(w, "Comment not found")
	default:
		log.Printf("[ERROR] Get %s handler: id=%d err=%v", entity, id, err)
		httputil.WriteInternalError(w, "Internal server error")
	}
}
