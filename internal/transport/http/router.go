package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Fred-Ko/wanted/internal/handler"
	"github.com/Fred-Ko/wanted/internal/httputil"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	KeywordHandler *handler.KeywordHandler
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", cfg.PostHandler.List)
		r.Post("/", cfg.PostHandler.Create)
		r.Post("/search", cfg.PostHandler.Search)
		r.Get("/{id}", cfg.PostHandler.GetByID)
		r.Patch("/{id}", cfg.PostHandler.Update)
		r.Delete("/{id}", cfg.PostHandler.Delete)
		r.Get("/{id}/comments", cfg.CommentHandler.List)
		r.Post("/{id}/comments", cfg.CommentHandler.Create)
	})

	// Batch body lookup used by list views that lazy-load post bodies
	r.Get("/post-details", cfg.PostHandler.GetDetails)

	r.Post("/keyword-subscriptions", cfg.KeywordHandler.Subscribe)

	return r
}
