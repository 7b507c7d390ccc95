package model

import "time"

// KeywordSubscription registers a subscriber's interest in posts mentioning
// a keyword. Matching is case-insensitive; keywords are stored lowercase.
type KeywordSubscription struct {
	ID         int64     `db:"id" json:"id"`
	Keyword    string    `db:"keyword" json:"keyword"`
	Subscriber string    `db:"subscriber" json:"subscriber"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
