package http

import (
	"context"
	"errors"
	"net/http"

	"couriertracking/internal/core/application/usecases/commands"
	"couriertracking/internal/core/application/usecases/queries"
	"couriertracking/internal/generated/servers"
	"couriertracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const locationLoggedMessage = "Location logged successfully"

type (
	// LocationCommandHandler records a courier ping.
	LocationCommandHandler interface {
		Handle(ctx context.Context, cmd commands.RecordCourierLocationCommand) error
	}

	// DistanceQueryHandler answers total travel distance queries.
	DistanceQueryHandler interface {
		Handle(ctx context.Context, q queries.GetTotalTravelDistanceQuery) (queries.GetTotalTravelDistanceQueryResponse, error)
	}

	// EntranceQueryHandler answers store entrance queries.
	EntranceQueryHandler interface {
		Handle(ctx context.Context, q queries.GetCourierStoreEntrancesQuery) ([]queries.GetCourierStoreEntrancesQueryResponse, error)
	}

	// StoreQueryHandler answers store catalog queries.
	StoreQueryHandler interface {
		Handle(ctx context.Context, q queries.GetAllStoresQuery) ([]queries.GetAllStoresQueryResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recordLocationHandler LocationCommandHandler

	// Query handlers
	totalDistanceHandler  DistanceQueryHandler
	storeEntrancesHandler EntranceQueryHandler
	allStoresHandler      StoreQueryHandler

	// Radius reported for stores without their own.
	defaultRadius float64
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	recordLocationHandler LocationCommandHandler,
	totalDistanceHandler DistanceQueryHandler,
	storeEntrancesHandler EntranceQueryHandler,
	allStoresHandler StoreQueryHandler,
	defaultRadius float64,
) *Server {
	return &Server{
		recordLocationHandler: recordLocationHandler,
		totalDistanceHandler:  totalDistanceHandler,
		storeEntrancesHandler: storeEntrancesHandler,
		allStoresHandler:      allStoresHandler,
		defaultRadius:         defaultRadius,
	}
}

// LogCourierLocation handles POST /api/couriers/location.
func (s *Server) LogCourierLocation(ctx echo.Context) error {
	var body servers.LogCourierLocationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRecordCourierLocationCommand(body.CourierId, body.Latitude, body.Longitude, body.Time)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid location: "+err.Error())
	}

	if err = s.recordLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return handlerError(ctx, err, "Failed to record location")
	}

	return ctx.JSON(http.StatusOK, servers.LocationLogged{Message: locationLoggedMessage})
}

// GetTotalTravelDistance handles GET /api/couriers/{courierId}/total-travel-distance.
func (s *Server) GetTotalTravelDistance(ctx echo.Context, courierID servers.CourierId) error {
	query, err := queries.NewGetTotalTravelDistanceQuery(courierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid courier id: "+err.Error())
	}

	result, err := s.totalDistanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve travel distance")
	}

	return ctx.JSON(http.StatusOK, servers.TotalTravelDistance{
		CourierId:     result.CourierID,
		TotalDistance: result.TotalDistance,
	})
}

// GetCourierStoreEntrances handles GET /api/couriers/{courierId}/store-entrances.
func (s *Server) GetCourierStoreEntrances(ctx echo.Context, courierID servers.CourierId) error {
	query, err := queries.NewGetCourierStoreEntrancesQuery(courierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid courier id: "+err.Error())
	}

	entrances, err := s.storeEntrancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve store entrances")
	}

	response := make([]servers.StoreEntrance, len(entrances))
	for i, e := range entrances {
		response[i] = servers.StoreEntrance{
			Id:           e.ID.Bytes(),
			CourierId:    e.CourierID,
			StoreId:      e.StoreID,
			StoreName:    e.StoreName,
			EntranceTime: e.EntranceTime,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStores handles GET /api/stores.
func (s *Server) GetStores(ctx echo.Context) error {
	stores, err := s.allStoresHandler.Handle(ctx.Request().Context(), queries.NewGetAllStoresQuery())
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve stores")
	}

	response := make([]servers.Store, len(stores))
	for i, st := range stores {
		radius := st.RadiusMeters
		if radius <= 0 {
			radius = s.defaultRadius
		}
		response[i] = servers.Store{
			Id:        st.ID,
			Name:      st.Name,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
			Radius:    radius,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func handlerError(ctx echo.Context, err error, message string) error {
	switch {
	case errs.IsValidation(err):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return errorJSON(ctx, http.StatusServiceUnavailable, message)
	default:
		ctx.Logger().Error(err)
		return errorJSON(ctx, http.StatusInternalServerError, message)
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: int32(code), Message: message})
}
