package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type sqlxTxRunner struct {
	db *sqlx.DB
}

// NewTxRunner creates a TxRunner backed by sqlx transactions.
func NewTxRunner(db *sqlx.DB) TxRunner {
	return &sqlxTxRunner{db: db}
}

// RunInTx opens a transaction, runs fn with it, and commits. Any error from
// fn (or the commit) rolls the transaction back and is returned unchanged so
// callers can match sentinel errors.
func (r *sqlxTxRunner) RunInTx(ctx context.Context, fn func(q Queryer) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
