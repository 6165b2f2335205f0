package entrancerepo

import (
	"context"

	"couriertracking/internal/core/domain/model/travel"

	"gorm.io/gorm"
)

// GormStoreEntranceRepository implements ports.StoreEntranceRepository using GORM.
type GormStoreEntranceRepository struct {
	db *gorm.DB
}

// NewGormStoreEntranceRepository creates a repository bound to db.
func NewGormStoreEntranceRepository(db *gorm.DB) *GormStoreEntranceRepository {
	return &GormStoreEntranceRepository{db: db}
}

// Add inserts an entrance.
func (r *GormStoreEntranceRepository) Add(ctx context.Context, entrance *travel.StoreEntrance) error {
	if err := entrance.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entrance)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByCourier returns the courier's entrances, newest first.
func (r *GormStoreEntranceRepository) ListByCourier(ctx context.Context, courierID string) ([]*travel.StoreEntrance, error) {
	var dtos []StoreEntranceDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).
		Order("entrance_time DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entrances := make([]*travel.StoreEntrance, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entrances = append(entrances, e)
	}
	return entrances, nil
}
