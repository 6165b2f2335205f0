package travel_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/pkg/errs"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewSummary(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s, err := travel.NewSummary("courier-1", t0)
		require.NoError(t, err)

		assert.NoError(t, s.Validate())
		assert.NoError(t, s.ID().Validate())
		assert.Equal(t, "courier-1", s.CourierID())
		assert.Zero(t, s.TotalDistance())
		assert.Nil(t, s.Location())
		assert.Equal(t, t0, s.CreatedAt())
		assert.Equal(t, t0, s.LastUpdated())
	})

	t.Run("requires a courier id", func(t *testing.T) {
		s, err := travel.NewSummary(" ", t0)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, s)
	})
}

func TestSummary_AddDistance(t *testing.T) {
	s, _ := travel.NewSummary("courier-1", t0)

	require.NoError(t, s.AddDistance(120.5, t0.Add(time.Second)))
	require.NoError(t, s.AddDistance(0, t0.Add(2*time.Second)))
	require.NoError(t, s.AddDistance(79.5, t0.Add(3*time.Second)))

	assert.InDelta(t, 200.0, s.TotalDistance(), 1e-9)
	assert.Equal(t, t0.Add(3*time.Second), s.LastUpdated())

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, s.AddDistance(bad, t0.Add(time.Hour)), errs.ErrValueIsInvalid)
	}
	assert.InDelta(t, 200.0, s.TotalDistance(), 1e-9)
	assert.Equal(t, t0.Add(3*time.Second), s.LastUpdated())
}

func TestSummary_LastUpdatedNeverGoesBack(t *testing.T) {
	s, _ := travel.NewSummary("courier-1", t0)
	require.NoError(t, s.AddDistance(1, t0.Add(-time.Minute)))
	assert.Equal(t, t0, s.LastUpdated())
}

func TestSummary_MoveTo(t *testing.T) {
	s, _ := travel.NewSummary("courier-1", t0)
	loc := kernel.MustNewLocation(41.01, 29.01)

	require.NoError(t, s.MoveTo(loc, t0))
	require.NotNil(t, s.Location())
	assert.InDelta(t, 41.01, s.Location().Latitude(), 0)

	assert.ErrorIs(t, s.MoveTo(kernel.Location{}, t0), kernel.ErrLocationIsNotConstructed)
}

func TestRestoreSummary(t *testing.T) {
	id := kernel.NewUUID()
	loc := kernel.MustNewLocation(41, 29)

	s, err := travel.RestoreSummary(id, "courier-9", 4200, &loc, t0.Add(time.Hour), t0)
	require.NoError(t, err)
	assert.True(t, id.IsEqual(s.ID()))
	assert.InDelta(t, 4200.0, s.TotalDistance(), 0)
	assert.Equal(t, t0.Add(time.Hour), s.LastUpdated())

	s, err = travel.RestoreSummary(id, "courier-9", 0, nil, t0, t0)
	require.NoError(t, err)
	assert.Nil(t, s.Location())

	_, err = travel.RestoreSummary(kernel.UUID{}, "", -1, nil, t0, t0)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSummary_Validate(t *testing.T) {
	var s *travel.Summary
	assert.ErrorIs(t, s.Validate(), travel.ErrSummaryIsNotConstructed)
}
