package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "couriertracking/internal/adapters/in/http"
	"couriertracking/internal/core/application/usecases/commands"
	"couriertracking/internal/core/application/usecases/queries"
	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/generated/servers"
	"couriertracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLocationHandler struct{ mock.Mock }

func (m *MockLocationHandler) Handle(ctx context.Context, cmd commands.RecordCourierLocationCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDistanceHandler struct{ mock.Mock }

func (m *MockDistanceHandler) Handle(
	ctx context.Context, q queries.GetTotalTravelDistanceQuery,
) (queries.GetTotalTravelDistanceQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetTotalTravelDistanceQueryResponse), args.Error(1)
}

type MockEntranceHandler struct{ mock.Mock }

func (m *MockEntranceHandler) Handle(
	ctx context.Context, q queries.GetCourierStoreEntrancesQuery,
) ([]queries.GetCourierStoreEntrancesQueryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetCourierStoreEntrancesQueryResponse), args.Error(1)
}

type MockStoreHandler struct{ mock.Mock }

func (m *MockStoreHandler) Handle(
	ctx context.Context, q queries.GetAllStoresQuery,
) ([]queries.GetAllStoresQueryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAllStoresQueryResponse), args.Error(1)
}

type MockRequestObserver struct{ mock.Mock }

func (m *MockRequestObserver) ObserveRequest(method, path string, status int) {
	m.Called(method, path, status)
}

type harness struct {
	e         *echo.Echo
	location  *MockLocationHandler
	distance  *MockDistanceHandler
	entrances *MockEntranceHandler
	stores    *MockStoreHandler
}

func newHarness(t *testing.T, cfg httpin.RouterConfig) *harness {
	t.Helper()
	h := &harness{
		location:  new(MockLocationHandler),
		distance:  new(MockDistanceHandler),
		entrances: new(MockEntranceHandler),
		stores:    new(MockStoreHandler),
	}
	server := httpin.NewServer(h.location, h.distance, h.entrances, h.stores, 100)
	e, err := httpin.NewRouter(server, cfg)
	require.NoError(t, err)
	h.e = e
	return h
}

func (h *harness) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogCourierLocation_Success(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	h.location.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RecordCourierLocationCommand) bool {
		return cmd.CourierID() == "courier-1" && cmd.TimeMs() == 1_700_000_000_000
	})).Return(nil).Once()

	rec := h.do(http.MethodPost, "/api/couriers/location",
		`{"courierId":"courier-1","latitude":41.084,"longitude":29.0093,"time":1700000000000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Location logged successfully"}`, rec.Body.String())
	h.location.AssertExpectations(t)
}

func TestLogCourierLocation_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing courier id", body: `{"latitude":41,"longitude":29,"time":1}`},
		{name: "empty courier id", body: `{"courierId":"","latitude":41,"longitude":29,"time":1}`},
		{name: "latitude above range", body: `{"courierId":"c","latitude":90.5,"longitude":29,"time":1}`},
		{name: "longitude below range", body: `{"courierId":"c","latitude":41,"longitude":-181,"time":1}`},
		{name: "missing time", body: `{"courierId":"c","latitude":41,"longitude":29}`},
		{name: "zero time", body: `{"courierId":"c","latitude":41,"longitude":29,"time":0}`},
		{name: "latitude as string", body: `{"courierId":"c","latitude":"41","longitude":29,"time":1}`},
		{name: "malformed json", body: `{"courierId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, httpin.RouterConfig{})

			rec := h.do(http.MethodPost, "/api/couriers/location", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.EqualValues(t, http.StatusBadRequest, decodeError(t, rec).Code)
			h.location.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestLogCourierLocation_HandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "validation", err: errs.NewValueIsRequiredError("courierId"), wantCode: http.StatusBadRequest},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, httpin.RouterConfig{})
			h.location.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := h.do(http.MethodPost, "/api/couriers/location",
				`{"courierId":"c","latitude":41,"longitude":29,"time":1}`)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetTotalTravelDistance(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	h.distance.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetTotalTravelDistanceQuery) bool {
		return q.CourierID() == "courier-1"
	})).Return(queries.GetTotalTravelDistanceQueryResponse{CourierID: "courier-1", TotalDistance: 1393.05}, nil).Once()

	rec := h.do(http.MethodGet, "/api/couriers/courier-1/total-travel-distance", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"courierId":"courier-1","totalDistance":1393.05}`, rec.Body.String())
	h.distance.AssertExpectations(t)
}

func TestGetTotalTravelDistance_UnknownCourierIsZero(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	h.distance.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetTotalTravelDistanceQueryResponse{CourierID: "nobody"}, nil).Once()

	rec := h.do(http.MethodGet, "/api/couriers/nobody/total-travel-distance", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"courierId":"nobody","totalDistance":0}`, rec.Body.String())
}

func TestGetTotalTravelDistance_StorageFailure(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	h.distance.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetTotalTravelDistanceQueryResponse{}, errors.New("connection refused")).Once()

	rec := h.do(http.MethodGet, "/api/couriers/courier-1/total-travel-distance", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve travel distance", decodeError(t, rec).Message)
}

func TestGetCourierStoreEntrances(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	id := kernel.NewUUID()
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	h.entrances.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetCourierStoreEntrancesQueryResponse{
		{ID: id, CourierID: "courier-1", StoreID: 4, StoreName: "Ortaköy MMM Migros", EntranceTime: at},
	}, nil).Once()

	rec := h.do(http.MethodGet, "/api/couriers/courier-1/store-entrances", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []servers.StoreEntrance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0].Id.String())
	assert.EqualValues(t, 4, body[0].StoreId)
	assert.True(t, at.Equal(body[0].EntranceTime))
}

func TestGetStores_ReportsEffectiveRadius(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})
	h.stores.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAllStoresQueryResponse{
		{ID: 1, Name: "Ataşehir MMM Migros", Latitude: 40.9923307, Longitude: 29.1244229},
		{ID: 2, Name: "Novada MMM Migros", Latitude: 40.986106, Longitude: 29.1161293, RadiusMeters: 50},
	}, nil).Once()

	rec := h.do(http.MethodGet, "/api/stores", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []servers.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.InDelta(t, 100.0, body[0].Radius, 1e-9)
	assert.InDelta(t, 50.0, body[1].Radius, 1e-9)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})

	rec := h.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metric 1\n"))
		}),
	})

	rec := h.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metric 1\n", rec.Body.String())
}

func TestSwaggerDocument(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})

	rec := h.do(http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/couriers/location")
}

func TestUnknownRouteIs404(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{})

	rec := h.do(http.MethodGet, "/api/nothing-here", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.EqualValues(t, http.StatusNotFound, decodeError(t, rec).Code)
}

func TestIngestRateLimit(t *testing.T) {
	h := newHarness(t, httpin.RouterConfig{IngestRateLimit: 0.001, IngestBurst: 1})
	h.location.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
	h.stores.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAllStoresQueryResponse{}, nil)
	body := `{"courierId":"c","latitude":41,"longitude":29,"time":1}`

	first := h.do(http.MethodPost, "/api/couriers/location", body)
	second := h.do(http.MethodPost, "/api/couriers/location", body)
	other := h.do(http.MethodGet, "/api/stores", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, other.Code, "only the ingest route is limited")
	h.location.AssertNumberOfCalls(t, "Handle", 1)
}

func TestRequestObserverSeesRoutePath(t *testing.T) {
	observer := new(MockRequestObserver)
	observer.On("ObserveRequest", http.MethodGet, "/api/couriers/:courierId/total-travel-distance", http.StatusOK).Once()
	h := newHarness(t, httpin.RouterConfig{RequestObserver: observer})
	h.distance.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetTotalTravelDistanceQueryResponse{CourierID: "c"}, nil).Once()

	rec := h.do(http.MethodGet, "/api/couriers/c/total-travel-distance", "")

	require.Equal(t, http.StatusOK, rec.Code)
	observer.AssertExpectations(t)
}
