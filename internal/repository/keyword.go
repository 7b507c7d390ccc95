package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Fred-Ko/wanted/internal/model"
)

type keywordSubscriptionRepository struct {
	db *sqlx.DB
}

func NewKeywordSubscriptionRepository(db *sqlx.DB) KeywordSubscriptionRepository {
	return &keywordSubscriptionRepository{db: db}
}

func (r *keywordSubscriptionRepository) Create(ctx context.Context, keyword, subscriber string) (*model.KeywordSubscription, error) {
	var sub model.KeywordSubscription
	err := r.db.GetContext(ctx, &sub, `
		INSERT INTO keyword_subscriptions (keyword, subscriber)
		VALUES ($1, $2)
		RETURNING id, keyword, subscriber, created_at
	`, keyword, subscriber)
	if err != nil {
		return nil, fmt.Errorf("insert keyword subscription: %w", err)
	}
	return &sub, nil
}

func (r *keywordSubscriptionRepository) FindByKeywords(ctx context.Context, keywords []string) ([]model.KeywordSubscription, error) {
	if len(keywords) == 0 {
		return []model.KeywordSubscription{}, nil
	}

	var subs []model.KeywordSubscription
	err := r.db.SelectContext(ctx, &subs, `
		SELECT id, keyword, subscriber, created_at
		FROM keyword_subscriptions
		WHERE keyword = ANY($1)
		ORDER BY id
	`, pq.Array(keywords))
	if err != nil {
		return nil, fmt.Errorf("find subscriptions by keywords: %w", err)
	}
	return subs, nil
}
