package summaryrepo

import (
	"context"
	"errors"

	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTravelSummaryRepository implements ports.TravelSummaryRepository using GORM.
type GormTravelSummaryRepository struct {
	db *gorm.DB
}

// NewGormTravelSummaryRepository creates a repository bound to db, which may be a transaction.
func NewGormTravelSummaryRepository(db *gorm.DB) *GormTravelSummaryRepository {
	return &GormTravelSummaryRepository{db: db}
}

// Get loads the courier's summary or returns errs.ObjectNotFoundError.
func (r *GormTravelSummaryRepository) Get(ctx context.Context, courierID string) (*travel.Summary, error) {
	var dto TravelSummaryDTO
	if err := r.db.WithContext(ctx).First(&dto, "courier_id = ?", courierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courierId", courierID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts on courier_id. The row id of an existing summary is kept.
func (r *GormTravelSummaryRepository) Save(ctx context.Context, summary *travel.Summary) error {
	if err := summary.Validate(); err != nil {
		return err
	}

	dto := fromDomain(summary)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "courier_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_distance", "last_latitude", "last_longitude", "last_updated",
		}),
	}).Create(&dto).Error
}
