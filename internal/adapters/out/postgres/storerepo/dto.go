// Package storerepo persists the store catalog with GORM.
package storerepo

import (
	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/store"
)

// StoreDTO is the stores row.
type StoreDTO struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"size:255;not null;uniqueIndex"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	RadiusMeters float64 `gorm:"not null;default:0"`
}

// TableName overrides GORM's pluralization.
func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	return StoreDTO{
		ID:           s.ID(),
		Name:         s.Name(),
		Latitude:     s.Location().Latitude(),
		Longitude:    s.Location().Longitude(),
		RadiusMeters: s.RadiusMeters(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	loc, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	return store.RestoreStore(dto.ID, dto.Name, loc, dto.RadiusMeters)
}
