package queries

import (
	"errors"

	"couriertracking/internal/pkg/guard"
)

var (
	ErrGetAllStoresQueryIsNotConstructed = errors.New(
		"GetAllStoresQuery must be created via NewGetAllStoresQuery constructor",
	)
)

// GetAllStoresQuery lists the store catalog. It has no parameters.
type GetAllStoresQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllStoresQuery creates the query.
func NewGetAllStoresQuery() GetAllStoresQuery {
	return GetAllStoresQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllStoresQuery) Validate() error {
	return q.guard.Validate(ErrGetAllStoresQueryIsNotConstructed)
}

// GetAllStoresQueryResponse is one store in the read model. RadiusMeters is 0 when
// the store uses the process-wide radius.
type GetAllStoresQueryResponse struct {
	ID           int64
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}
