// Package entrancerepo persists store entrances with GORM.
package entrancerepo

import (
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/travel"

	"github.com/google/uuid"
)

// StoreEntranceDTO is the store_entrances row.
type StoreEntranceDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID    string    `gorm:"size:255;not null;index:idx_store_entrances_courier_time,priority:1"`
	StoreID      int64     `gorm:"not null;index"`
	StoreName    string    `gorm:"size:255;not null"`
	EntranceTime time.Time `gorm:"not null;index:idx_store_entrances_courier_time,priority:2,sort:desc"`
}

// TableName overrides GORM's pluralization.
func (StoreEntranceDTO) TableName() string {
	return "store_entrances"
}

func fromDomain(e *travel.StoreEntrance) StoreEntranceDTO {
	return StoreEntranceDTO{
		ID:           e.ID().Bytes(),
		CourierID:    e.CourierID(),
		StoreID:      e.StoreID(),
		StoreName:    e.StoreName(),
		EntranceTime: e.EntranceTime(),
	}
}

func toDomain(dto StoreEntranceDTO) (*travel.StoreEntrance, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return travel.RestoreStoreEntrance(id, dto.CourierID, dto.StoreID, dto.StoreName, dto.EntranceTime.UTC())
}
