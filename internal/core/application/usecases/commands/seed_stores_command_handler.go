package commands

import (
	"context"
)

// SeedStoresCommandHandler writes the seed catalog when the store table is empty.
// A non-empty table is left untouched, so restarts never duplicate stores.
type SeedStoresCommandHandler struct {
	uowFactory StoreUoWFactory
}

// NewSeedStoresCommandHandler creates the handler.
func NewSeedStoresCommandHandler(uowFactory StoreUoWFactory) SeedStoresCommandHandler {
	return SeedStoresCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of stores inserted, 0 when the catalog was already seeded.
func (h SeedStoresCommandHandler) Handle(ctx context.Context, cmd SeedStoresCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StoreRepository()
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, s := range cmd.Stores() {
		if err = repo.Add(ctx, s); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(cmd.Stores()), nil
}
