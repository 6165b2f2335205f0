// Package postgres provides the GORM-based Unit of Work over the tracking repositories.
//
// Repositories obtained from a GormUnitOfWork run inside its transaction once Begin
// has been called and directly against the connection otherwise.
//
// Typical flush:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	summary, err := uow.TravelSummaryRepository().Get(ctx, courierID)
//	...
//	if err := uow.TravelSummaryRepository().Save(ctx, summary); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine. Concurrent operations
// create their own instance through the factory.
package postgres

import (
	"context"

	"couriertracking/internal/adapters/out/postgres/entrancerepo"
	"couriertracking/internal/adapters/out/postgres/storerepo"
	"couriertracking/internal/adapters/out/postgres/summaryrepo"
	"couriertracking/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction started.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction across the repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin on an active unit of work does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when none is
// active, so a deferred Rollback after a successful Commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// TravelSummaryRepository returns a summary repository bound to the current transaction.
func (uow *GormUnitOfWork) TravelSummaryRepository() ports.TravelSummaryRepository {
	return summaryrepo.NewGormTravelSummaryRepository(uow.conn())
}

// StoreEntranceRepository returns an entrance repository bound to the current transaction.
func (uow *GormUnitOfWork) StoreEntranceRepository() ports.StoreEntranceRepository {
	return entrancerepo.NewGormStoreEntranceRepository(uow.conn())
}

// StoreRepository returns a store repository bound to the current transaction.
func (uow *GormUnitOfWork) StoreRepository() ports.StoreRepository {
	return storerepo.NewGormStoreRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Migrate creates or updates the tracking tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&summaryrepo.TravelSummaryDTO{},
		&entrancerepo.StoreEntranceDTO{},
		&storerepo.StoreDTO{},
	)
}
