package queries

import (
	"context"
)

// GetTotalTravelDistanceQueryHandler reads the courier's distance through the tracking
// engine, which flushes pending distance before reading durable storage.
type GetTotalTravelDistanceQueryHandler struct {
	reader DistanceReader
}

// NewGetTotalTravelDistanceQueryHandler creates the handler.
func NewGetTotalTravelDistanceQueryHandler(reader DistanceReader) GetTotalTravelDistanceQueryHandler {
	return GetTotalTravelDistanceQueryHandler{reader: reader}
}

// Handle returns the courier's total distance in meters.
func (h GetTotalTravelDistanceQueryHandler) Handle(
	ctx context.Context,
	query GetTotalTravelDistanceQuery,
) (GetTotalTravelDistanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTotalTravelDistanceQueryResponse{}, err
	}

	total, err := h.reader.TotalDistance(ctx, query.CourierID())
	if err != nil {
		return GetTotalTravelDistanceQueryResponse{}, err
	}

	return GetTotalTravelDistanceQueryResponse{
		CourierID:     query.CourierID(),
		TotalDistance: total,
	}, nil
}
