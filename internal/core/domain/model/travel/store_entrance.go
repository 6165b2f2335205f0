package travel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/pkg/errs"
)

// ErrStoreEntranceIsNotConstructed is returned for zero-value entrances.
var ErrStoreEntranceIsNotConstructed = errors.New("StoreEntrance must be created via NewStoreEntrance constructor")

// StoreEntrance records that a courier entered a store geofence at a given event time.
// It is immutable once built.
type StoreEntrance struct {
	id           kernel.UUID
	courierID    string
	storeID      int64
	storeName    string
	entranceTime time.Time

	isConstructed bool
}

// NewStoreEntrance creates an entrance with a fresh identifier.
func NewStoreEntrance(courierID string, storeID int64, storeName string, entranceTime time.Time) (*StoreEntrance, error) {
	return RestoreStoreEntrance(kernel.NewUUID(), courierID, storeID, storeName, entranceTime)
}

// RestoreStoreEntrance rebuilds a persisted entrance.
func RestoreStoreEntrance(
	id kernel.UUID,
	courierID string,
	storeID int64,
	storeName string,
	entranceTime time.Time,
) (*StoreEntrance, error) {
	var errList []error
	errList = append(errList, id.Validate())
	if strings.TrimSpace(courierID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("courierId"))
	}
	if storeID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("storeId", fmt.Errorf("%d is not greater than 0", storeID)))
	}
	if strings.TrimSpace(storeName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("storeName"))
	}
	if entranceTime.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("entranceTime"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &StoreEntrance{
		id:            id,
		courierID:     courierID,
		storeID:       storeID,
		storeName:     storeName,
		entranceTime:  entranceTime,
		isConstructed: true,
	}, nil
}

// Validate rejects zero-value entrances.
func (e *StoreEntrance) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrStoreEntranceIsNotConstructed
	}
	return nil
}

// ID returns the entrance identifier.
func (e *StoreEntrance) ID() kernel.UUID { return e.id }

// CourierID returns the courier that entered the store.
func (e *StoreEntrance) CourierID() string { return e.courierID }

// StoreID returns the store identifier.
func (e *StoreEntrance) StoreID() int64 { return e.storeID }

// StoreName returns the store name at the time of entrance.
func (e *StoreEntrance) StoreName() string { return e.storeName }

// EntranceTime returns the ping's event time.
func (e *StoreEntrance) EntranceTime() time.Time { return e.entranceTime }
