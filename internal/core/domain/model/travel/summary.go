package travel

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/pkg/errs"
)

var (
	// ErrSummaryIsNotConstructed is returned when a Summary was not created through
	// NewSummary or RestoreSummary.
	ErrSummaryIsNotConstructed = errors.New("Summary must be created via NewSummary constructor")
)

// Summary is the durable travel record of one courier.
//
// Summary follows these invariants:
//   - courierID is non-empty and never changes
//   - totalDistance is non-negative and only grows
//   - lastUpdated is never before createdAt
type Summary struct {
	id            kernel.UUID
	courierID     string
	totalDistance float64
	location      *kernel.Location
	lastUpdated   time.Time
	createdAt     time.Time

	isConstructed bool
}

// NewSummary creates an empty summary for a courier seen for the first time.
//
// Example:
//
//	s, err := travel.NewSummary("courier-42", time.Now())
//	if err != nil {
//	    return err
//	}
//	_ = s.AddDistance(125.5, time.Now())
func NewSummary(courierID string, now time.Time) (*Summary, error) {
	courierID = strings.TrimSpace(courierID)
	if courierID == "" {
		return nil, errs.NewValueIsRequiredError("courierId")
	}

	return &Summary{
		id:            kernel.NewUUID(),
		courierID:     courierID,
		lastUpdated:   now,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreSummary rebuilds a summary loaded from storage. location may be nil.
func RestoreSummary(
	id kernel.UUID,
	courierID string,
	totalDistance float64,
	location *kernel.Location,
	lastUpdated time.Time,
	createdAt time.Time,
) (*Summary, error) {
	var locErr error
	if location != nil {
		locErr = location.Validate()
	}

	var courierErr error
	if strings.TrimSpace(courierID) == "" {
		courierErr = errs.NewValueIsRequiredError("courierId")
	}

	if err := errors.Join(id.Validate(), courierErr, validateDistance(totalDistance), locErr); err != nil {
		return nil, err
	}

	return &Summary{
		id:            id,
		courierID:     courierID,
		totalDistance: totalDistance,
		location:      location,
		lastUpdated:   lastUpdated,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate rejects zero-value summaries.
func (s *Summary) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSummaryIsNotConstructed
	}
	return nil
}

// ID returns the summary identifier.
func (s *Summary) ID() kernel.UUID {
	return s.id
}

// CourierID returns the courier the summary belongs to.
func (s *Summary) CourierID() string {
	return s.courierID
}

// TotalDistance returns the cumulative distance in meters.
func (s *Summary) TotalDistance() float64 {
	return s.totalDistance
}

// Location returns the last known position, or nil if none was ever flushed.
func (s *Summary) Location() *kernel.Location {
	return s.location
}

// LastUpdated returns the time of the most recent change.
func (s *Summary) LastUpdated() time.Time {
	return s.lastUpdated
}

// CreatedAt returns the creation time.
func (s *Summary) CreatedAt() time.Time {
	return s.createdAt
}

// AddDistance adds a flushed increment in meters. Negative, NaN and infinite
// increments are rejected and leave the summary untouched.
func (s *Summary) AddDistance(meters float64, now time.Time) error {
	if err := validateDistance(meters); err != nil {
		return err
	}
	s.totalDistance += meters
	s.touch(now)
	return nil
}

// MoveTo records the courier's last known position.
func (s *Summary) MoveTo(location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = &location
	s.touch(now)
	return nil
}

func (s *Summary) touch(now time.Time) {
	if now.After(s.lastUpdated) {
		s.lastUpdated = now
	}
}

func validateDistance(meters float64) error {
	if meters < 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is not a finite non-negative number", meters))
	}
	return nil
}
