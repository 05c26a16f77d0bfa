package storage

import (
	"context"

	"phish-ratings/models"
)

// ShowStore is the durable home of scraped shows, keyed by show id.
type ShowStore interface {
	// Begin opens the transaction that upserts are written through.
	// Nothing is visible to readers until the caller commits it.
	Begin(ctx context.Context) (ShowTx, error)
	// ShowsForYear returns the year's shows ordered by rating, highest first.
	ShowsForYear(ctx context.Context, year int) ([]models.Show, error)
	// DistinctYears returns every stored year in ascending order.
	DistinctYears(ctx context.Context) ([]int, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// ShowTx is an open write transaction.
type ShowTx interface {
	// Upsert inserts each show, replacing any row with the same show id.
	Upsert(ctx context.Context, shows []models.Show) error
	Commit() error
	Rollback() error
}
