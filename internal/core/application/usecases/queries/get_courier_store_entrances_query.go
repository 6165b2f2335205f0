package queries

import (
	"errors"
	"strings"
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/pkg/errs"
	"couriertracking/internal/pkg/guard"
)

var (
	ErrGetCourierStoreEntrancesQueryIsNotConstructed = errors.New(
		"GetCourierStoreEntrancesQuery must be created via NewGetCourierStoreEntrancesQuery constructor",
	)
)

// GetCourierStoreEntrancesQuery lists the store entrances of one courier.
type GetCourierStoreEntrancesQuery struct {
	courierID string
	guard     guard.ConstructorGuard
}

// NewGetCourierStoreEntrancesQuery requires a non-empty courier id.
func NewGetCourierStoreEntrancesQuery(courierID string) (GetCourierStoreEntrancesQuery, error) {
	courierID = strings.TrimSpace(courierID)
	if courierID == "" {
		return GetCourierStoreEntrancesQuery{}, errs.NewValueIsRequiredError("courierId")
	}
	return GetCourierStoreEntrancesQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStoreEntrancesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierStoreEntrancesQueryIsNotConstructed)
}

// CourierID returns the requested courier.
func (q GetCourierStoreEntrancesQuery) CourierID() string {
	return q.courierID
}

// GetCourierStoreEntrancesQueryResponse is one entrance in the read model.
type GetCourierStoreEntrancesQueryResponse struct {
	ID           kernel.UUID
	CourierID    string
	StoreID      int64
	StoreName    string
	EntranceTime time.Time
}
