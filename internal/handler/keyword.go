package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Fred-Ko/wanted/internal/httputil"
	"github.com/Fred-Ko/wanted/internal/repository"
)

type KeywordHandler struct {
	subscriptions repository.KeywordSubscriptionRepository
}

func NewKeywordHandler(subscriptions repository.KeywordSubscriptionRepository) *KeywordHandler {
	return &KeywordHandler{subscriptions: subscriptions}
}

// CreateSubscriptionRequest is the body of POST /keyword-subscriptions.
type CreateSubscriptionRequest struct {
	Keyword    string `json:"keyword"`
	Subscriber string `json:"subscriber"`
}

// Subscribe handles POST /keyword-subscriptions
// Registers a subscriber for posts mentioning a keyword. Keywords are stored
// lowercase to match the extractor.
func (h *KeywordHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Keyword = strings.ToLower(strings.TrimSpace(req.Keyword))
	req.Subscriber = strings.TrimSpace(req.Subscriber)
	if req.Keyword == "" || req.Subscriber == "" {
		httputil.WriteBadRequest(w, "keyword and subscriber are required")
		return
	}

	sub, err := h.subscriptions.Create(r.Context(), req.Keyword, req.Subscriber)
	if err != nil {
		log.Printf("[ERROR] Subscribe handler: keyword=%q err=%v", req.Keyword, err)
		httputil.WriteInternalError(w, "Failed to create subscription")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, sub)
}
