package queries

import (
	"errors"
	"strings"

	"couriertracking/internal/pkg/errs"
	"couriertracking/internal/pkg/guard"
)

var (
	ErrGetTotalTravelDistanceQueryIsNotConstructed = errors.New(
		"GetTotalTravelDistanceQuery must be created via NewGetTotalTravelDistanceQuery constructor",
	)
)

// GetTotalTravelDistanceQuery asks for the cumulative distance of one courier.
type GetTotalTravelDistanceQuery struct {
	courierID string
	guard     guard.ConstructorGuard
}

// NewGetTotalTravelDistanceQuery requires a non-empty courier id.
func NewGetTotalTravelDistanceQuery(courierID string) (GetTotalTravelDistanceQuery, error) {
	courierID = strings.TrimSpace(courierID)
	if courierID == "" {
		return GetTotalTravelDistanceQuery{}, errs.NewValueIsRequiredError("courierId")
	}
	return GetTotalTravelDistanceQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTotalTravelDistanceQuery) Validate() error {
	return q.guard.Validate(ErrGetTotalTravelDistanceQueryIsNotConstructed)
}

// CourierID returns the requested courier.
func (q GetTotalTravelDistanceQuery) CourierID() string {
	return q.courierID
}

// GetTotalTravelDistanceQueryResponse is the distance read model. Unknown couriers have
// a zero TotalDistance.
type GetTotalTravelDistanceQueryResponse struct {
	CourierID     string
	TotalDistance float64
}
