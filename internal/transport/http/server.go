// Package http wires the application together and runs the HTTP server.
package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fred-Ko/wanted/internal/config"
	"github.com/Fred-Ko/wanted/internal/database"
	"github.com/Fred-Ko/wanted/internal/handler"
	"github.com/Fred-Ko/wanted/internal/password"
	"github.com/Fred-Ko/wanted/internal/queue"
	"github.com/Fred-Ko/wanted/internal/redis"
	"github.com/Fred-Ko/wanted/internal/repository"
	"github.com/Fred-Ko/wanted/internal/service"
	"github.com/Fred-Ko/wanted/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Run loads configuration, connects the backing stores, starts the keyword
// notification workers, and serves HTTP until interrupted.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	redisClient, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	hasher, err := password.NewHasher(cfg.PasswordSaltRounds, cfg.PasswordSecret)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	// Repositories
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	keywordRepo := repository.NewKeywordSubscriptionRepository(db)
	txRunner := repository.NewTxRunner(db)

	// Event pipeline
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)

	// Services
	postService := service.NewPostService(postRepo, commentRepo, txRunner, publisher, hasher)
	commentService := service.NewCommentService(postRepo, commentRepo)

	// Keyword notification workers
	manager := worker.NewManager(consumer, worker.NewHandler(keywordRepo), cfg.WorkerCount)
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	router := NewRouter(RouterConfig{
		PostHandler:    handler.NewPostHandler(postService),
		CommentHandler: handler.NewCommentHandler(commentService),
		KeywordHandler: handler.NewKeywordHandler(keywordRepo),
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
