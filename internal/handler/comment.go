package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Fred-Ko/wanted/internal/httputil"
	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /posts/:id/comments
// Adds a comment, optionally as a reply to a comment on the same post.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	req.PostID = postID

	result := h.commentService.AddComment(r.Context(), req)
	httputil.WriteJSON(w, mutationStatus(result.Success, result.ErrorCode, http.StatusCreated), result)
}

// List handles GET /posts/:id/comments
// Returns a page of the post's comments in chronological order.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	first, after, ok := parsePageParams(w, r)
	if !ok {
		return
	}

	page, err := h.commentService.FindPaginatedCommentsByPostID(r.Context(), postID, first, after)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] List comments handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, "Failed to list comments")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}
