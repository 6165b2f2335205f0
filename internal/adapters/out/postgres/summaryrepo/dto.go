// Package summaryrepo persists travel summaries with GORM.
package summaryrepo

import (
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/travel"

	"github.com/google/uuid"
)

// TravelSummaryDTO is the travel_summaries row. One row per courier.
type TravelSummaryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID     string    `gorm:"size:255;not null;uniqueIndex"`
	TotalDistance float64   `gorm:"not null;default:0"`
	LastLatitude  *float64
	LastLongitude *float64
	LastUpdated   time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName overrides GORM's pluralization.
func (TravelSummaryDTO) TableName() string {
	return "travel_summaries"
}

func fromDomain(s *travel.Summary) TravelSummaryDTO {
	dto := TravelSummaryDTO{
		ID:            s.ID().Bytes(),
		CourierID:     s.CourierID(),
		TotalDistance: s.TotalDistance(),
		LastUpdated:   s.LastUpdated(),
		CreatedAt:     s.CreatedAt(),
	}
	if loc := s.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.LastLatitude, dto.LastLongitude = &lat, &lng
	}
	return dto
}

func toDomain(dto TravelSummaryDTO) (*travel.Summary, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var loc *kernel.Location
	if dto.LastLatitude != nil && dto.LastLongitude != nil {
		l, locErr := kernel.NewLocation(*dto.LastLatitude, *dto.LastLongitude)
		if locErr != nil {
			return nil, locErr
		}
		loc = &l
	}

	return travel.RestoreSummary(id, dto.CourierID, dto.TotalDistance, loc, dto.LastUpdated.UTC(), dto.CreatedAt.UTC())
}
