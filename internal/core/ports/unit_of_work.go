package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the repositories.
// Repositories obtained after Begin run inside the transaction; before Begin
// they run directly against the underlying store.
type UnitOfWork interface {
	// Begin starts a transaction. Calling Begin twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	Rollback(ctx context.Context) error

	// TravelSummaryRepository returns a repository bound to the current transaction.
	TravelSummaryRepository() TravelSummaryRepository

	// StoreEntranceRepository returns a repository bound to the current transaction.
	StoreEntranceRepository() StoreEntranceRepository

	// StoreRepository returns a repository bound to the current transaction.
	StoreRepository() StoreRepository
}
