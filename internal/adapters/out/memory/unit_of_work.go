package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/core/ports"
)

// ErrInvalidTransaction is returned by Commit and Rollback without an active transaction.
var ErrInvalidTransaction = errors.New("invalid transaction")

// UnitOfWorkFactory creates units of work over one Database.
type UnitOfWorkFactory struct {
	db *Database
}

// NewUnitOfWorkFactory creates a factory over db.
func NewUnitOfWorkFactory(db *Database) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

// Create returns a unit of work with no transaction started.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork buffers writes made after Begin and applies them on Commit.
// Without Begin every write is applied immediately. Summary reads see buffered
// writes; entrance and store listings read committed state only.
type UnitOfWork struct {
	db *Database
	tx *pending
}

type pending struct {
	summaries map[string]*travel.Summary
	order     []string
	entrances []*travel.StoreEntrance
	stores    []*store.Store
}

// Begin starts buffering. Calling Begin twice is a no-op.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.tx == nil {
		u.tx = &pending{summaries: make(map[string]*travel.Summary)}
	}
	return nil
}

// Commit applies the buffered writes. Stores are applied first so that a duplicate
// name leaves the database untouched.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrInvalidTransaction
	}
	tx := u.tx
	u.tx = nil

	if err := u.db.applyStores(tx.stores); err != nil {
		return err
	}
	summaries := make([]*travel.Summary, 0, len(tx.order))
	for _, courierID := range tx.order {
		summaries = append(summaries, tx.summaries[courierID])
	}
	if err := u.db.applySummaries(summaries); err != nil {
		return err
	}
	u.db.applyEntrances(tx.entrances)
	return nil
}

// Rollback drops the buffered writes.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrInvalidTransaction
	}
	u.tx = nil
	return nil
}

// TravelSummaryRepository returns a repository bound to this unit of work.
func (u *UnitOfWork) TravelSummaryRepository() ports.TravelSummaryRepository {
	return &summaryRepository{uow: u}
}

// StoreEntranceRepository returns a repository bound to this unit of work.
func (u *UnitOfWork) StoreEntranceRepository() ports.StoreEntranceRepository {
	return &entranceRepository{uow: u}
}

// StoreRepository returns a repository bound to this unit of work.
func (u *UnitOfWork) StoreRepository() ports.StoreRepository {
	return &storeRepository{uow: u}
}

type summaryRepository struct {
	uow *UnitOfWork
}

func (r *summaryRepository) Get(ctx context.Context, courierID string) (*travel.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tx := r.uow.tx; tx != nil {
		if s, ok := tx.summaries[courierID]; ok {
			return copySummary(s, s.ID(), s.CreatedAt())
		}
	}
	return r.uow.db.getSummary(courierID)
}

func (r *summaryRepository) Save(ctx context.Context, summary *travel.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := summary.Validate(); err != nil {
		return err
	}

	tx := r.uow.tx
	if tx == nil {
		return r.uow.db.applySummaries([]*travel.Summary{summary})
	}

	snapshot, err := copySummary(summary, summary.ID(), summary.CreatedAt())
	if err != nil {
		return err
	}
	if _, seen := tx.summaries[summary.CourierID()]; !seen {
		tx.order = append(tx.order, summary.CourierID())
	}
	tx.summaries[summary.CourierID()] = snapshot
	return nil
}

type entranceRepository struct {
	uow *UnitOfWork
}

func (r *entranceRepository) Add(ctx context.Context, entrance *travel.StoreEntrance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entrance.Validate(); err != nil {
		return err
	}

	if tx := r.uow.tx; tx != nil {
		tx.entrances = append(tx.entrances, entrance)
		return nil
	}
	r.uow.db.applyEntrances([]*travel.StoreEntrance{entrance})
	return nil
}

func (r *entranceRepository) ListByCourier(ctx context.Context, courierID string) ([]*travel.StoreEntrance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.uow.db.listEntrances(courierID), nil
}

type storeRepository struct {
	uow *UnitOfWork
}

func (r *storeRepository) Add(ctx context.Context, s *store.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	if tx := r.uow.tx; tx != nil {
		for _, staged := range tx.stores {
			if strings.EqualFold(staged.Name(), s.Name()) {
				return fmt.Errorf("%w: %s", ErrDuplicateStoreName, s.Name())
			}
		}
		tx.stores = append(tx.stores, s)
		return nil
	}
	return r.uow.db.applyStores([]*store.Store{s})
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := r.uow.db.countStores()
	if tx := r.uow.tx; tx != nil {
		n += int64(len(tx.stores))
	}
	return n, nil
}

func (r *storeRepository) GetAll(ctx context.Context) ([]*store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.uow.db.allStores()
}
