package queries

import (
	"context"

	"couriertracking/internal/core/domain/model/store"
)

// GetAllStoresQueryHandler lists stores ordered by identifier.
type GetAllStoresQueryHandler struct {
	reader StoreReader
}

// NewGetAllStoresQueryHandler creates the handler.
func NewGetAllStoresQueryHandler(reader StoreReader) GetAllStoresQueryHandler {
	return GetAllStoresQueryHandler{reader: reader}
}

// Handle returns every store as a read model.
func (h GetAllStoresQueryHandler) Handle(ctx context.Context, query GetAllStoresQuery) ([]GetAllStoresQueryResponse, error) {
	stores, err := h.Stores(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]GetAllStoresQueryResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, GetAllStoresQueryResponse{
			ID:           s.ID(),
			Name:         s.Name(),
			Latitude:     s.Location().Latitude(),
			Longitude:    s.Location().Longitude(),
			RadiusMeters: s.RadiusMeters(),
		})
	}
	return out, nil
}

// Stores returns the catalog as domain objects, used at startup to build the geofence
// directory.
func (h GetAllStoresQueryHandler) Stores(ctx context.Context, query GetAllStoresQuery) ([]*store.Store, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.GetAll(ctx)
}
