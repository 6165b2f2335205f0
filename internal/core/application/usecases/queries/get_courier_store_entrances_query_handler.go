package queries

import (
	"context"
)

// GetCourierStoreEntrancesQueryHandler lists entrances from the entrance repository.
type GetCourierStoreEntrancesQueryHandler struct {
	reader EntranceReader
}

// NewGetCourierStoreEntrancesQueryHandler creates the handler.
func NewGetCourierStoreEntrancesQueryHandler(reader EntranceReader) GetCourierStoreEntrancesQueryHandler {
	return GetCourierStoreEntrancesQueryHandler{reader: reader}
}

// Handle returns the entrances newest first; an unknown courier yields an empty slice.
func (h GetCourierStoreEntrancesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStoreEntrancesQuery,
) ([]GetCourierStoreEntrancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entrances, err := h.reader.ListByCourier(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	out := make([]GetCourierStoreEntrancesQueryResponse, 0, len(entrances))
	for _, e := range entrances {
		out = append(out, GetCourierStoreEntrancesQueryResponse{
			ID:           e.ID(),
			CourierID:    e.CourierID(),
			StoreID:      e.StoreID(),
			StoreName:    e.StoreName(),
			EntranceTime: e.EntranceTime(),
		})
	}
	return out, nil
}
