package notify

import (
	"context"
	"log/slog"
	"time"

	"couriertracking/internal/core/application/tracking"
)

// LoggingObserver writes every entrance to a structured log.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates an observer logging through logger.
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger.With("component", "entrance-log")}
}

// OnStoreEntrance logs the event at info level.
func (o *LoggingObserver) OnStoreEntrance(ctx context.Context, event tracking.StoreEntranceEvent) error {
	o.logger.InfoContext(ctx, "courier entered store",
		"courier_id", event.CourierID,
		"store_id", event.StoreID,
		"store", event.StoreName,
		"entrance_time", time.UnixMilli(event.EntranceTimeMs).UTC())
	return nil
}
