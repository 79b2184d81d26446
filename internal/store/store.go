// Package store owns persistence for transactions, GST summaries and
// categories. The Store interface is the single seam between the HTTP/chat
// layer and Postgres; handlers receive an explicitly constructed handle
// rather than reaching for a global client.
package store

import (
	"context"
	"errors"

	"VyaparDash/internal/model"
)

// ErrNotFound is returned when an owner-scoped lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract used by handlers, the chat responder
// and the seeder. Every operation is owner-scoped.
type Store interface {
	// ListTransactions returns the owner's transactions, newest first.
	ListTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error)
	// InsertTransactions batch-inserts and reports how many rows landed.
	InsertTransactions(ctx context.Context, txns []model.Transaction) (int, error)
	// DeleteTransaction removes one transaction owned by ownerID.
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	// DeleteAllTransactions clears the owner's ledger (used by reseeding).
	DeleteAllTransactions(ctx context.Context, ownerID string) error

	// ReplaceGSTSummaries swaps the owner's summary set wholesale. Periods
	// missing from the new set are removed: an absent row means no GST
	// activity that month.
	ReplaceGSTSummaries(ctx context.Context, ownerID string, summaries []model.GSTSummary) error
	// ListGSTSummaries returns the owner's summaries, newest period first.
	ListGSTSummaries(ctx context.Context, ownerID string) ([]model.GSTSummary, error)
	// GetGSTSummary fetches one period's summary or ErrNotFound.
	GetGSTSummary(ctx context.Context, ownerID, period string) (model.GSTSummary, error)

	// ListCategories returns the curated category set.
	ListCategories(ctx context.Context) ([]model.Category, error)
}
