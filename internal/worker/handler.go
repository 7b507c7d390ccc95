package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Fred-Ko/wanted/internal/keyword"
	"github.com/Fred-Ko/wanted/internal/model"
	"github.com/Fred-Ko/wanted/internal/queue"
)

// SubscriptionFinder abstracts the keyword subscription lookup so the worker
// doesn't depend on the database layer directly.
type SubscriptionFinder interface {
	FindByKeywords(ctx context.Context, keywords []string) ([]model.KeywordSubscription, error)
}

// Handler processes post domain events from the stream and raises keyword
// notifications for matching subscriptions.
type Handler struct {
	subscriptions SubscriptionFinder
}

// NewHandler creates a new event handler.
func NewHandler(subscriptions SubscriptionFinder) *Handler {
	return &Handler{subscriptions: subscriptions}
}

// HandleEvent routes an envelope to the appropriate handler based on kind.
func (h *Handler) HandleEvent(ctx context.Context, env queue.Envelope) error {
	startTime := time.Now()

	event, err := env.Decode()
	if err != nil {
		return err
	}

	switch e := event.(type) {
	case queue.PostCreatedEvent:
		err = h.notifyKeywords(ctx, e.ID, e.Title, e.Content)
	case queue.PostUpdatedEvent:
		var content string
		if e.Content != nil {
			content = *e.Content
		}
		err = h.notifyKeywords(ctx, e.ID, e.Title, content)
	default:
		return fmt.Errorf("unhandled event kind: %s", env.Kind)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: kind=%s duration=%v err=%v",
			env.Kind, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: kind=%s duration=%v", env.Kind, time.Since(startTime))
	return nil
}

// notifyKeywords extracts keywords from a post's title and body and logs a
// notification for every matching subscription.
func (h *Handler) notifyKeywords(ctx context.Context, postID int64, title, content string) error {
	keywords := keyword.Extract(title, content)
	if len(keywords) == 0 {
		return nil
	}

	subs, err := h.subscriptions.FindByKeywords(ctx, keywords)
	if err != nil {
		return fmt.Errorf("find subscriptions: %w", err)
	}

	for _, sub := range subs {
		log.Printf("[Worker] keyword notification: post=%d keyword=%q subscriber=%s",
			postID, sub.Keyword, sub.Subscriber)
	}

	log.Printf("[Worker] keyword scan DONE: post=%d keywords=%d matches=%d",
		postID, len(keywords), len(subs))
	return nil
}
