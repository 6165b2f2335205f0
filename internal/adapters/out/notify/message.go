// Package notify fans store entrance events out to logs and message brokers.
// Every observer here implements tracking.EntranceObserver.
package notify

import (
	"encoding/json"
	"time"

	"couriertracking/internal/core/application/tracking"
)

const publishTimeout = 2 * time.Second

// EntranceMessage is the JSON body published for each store entrance.
type EntranceMessage struct {
	CourierID    string `json:"courierId"`
	StoreID      int64  `json:"storeId"`
	StoreName    string `json:"storeName"`
	EntranceTime int64  `json:"entranceTime"`
}

func encode(event tracking.StoreEntranceEvent) ([]byte, error) {
	return json.Marshal(EntranceMessage{
		CourierID:    event.CourierID,
		StoreID:      event.StoreID,
		StoreName:    event.StoreName,
		EntranceTime: event.EntranceTimeMs,
	})
}
