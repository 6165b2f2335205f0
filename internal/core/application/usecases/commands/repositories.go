// Package commands contains business operations that modify system state.
// Every command is validated by its constructor and carried to a handler that owns the
// transaction or engine call.
package commands

import (
	"context"

	"couriertracking/internal/core/application/tracking"
	"couriertracking/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StoreRepoFactory provides access to the store repository within a transaction.
	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	// StoreUoW manages transactions for store catalog changes.
	StoreUoW interface {
		TxManager
		StoreRepoFactory
	}

	// StoreUoWFactory creates new store unit of work instances.
	StoreUoWFactory interface {
		Create() StoreUoW
	}

	// PingRecorder is the slice of the tracking engine the location command needs.
	PingRecorder interface {
		RecordPing(ctx context.Context, ping tracking.Ping) error
	}
)
