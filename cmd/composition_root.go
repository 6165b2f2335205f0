package cmd

import (
	"context"
	"log/slog"

	httpin "couriertracking/internal/adapters/in/http"
	"couriertracking/internal/adapters/out/memory"
	"couriertracking/internal/adapters/out/postgres"
	"couriertracking/internal/core/application/tracking"
	"couriertracking/internal/core/application/usecases/commands"
	"couriertracking/internal/core/application/usecases/queries"
	"couriertracking/internal/core/domain/services"
	"couriertracking/internal/core/ports"
	"couriertracking/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	uowFactory ports.UnitOfWorkFactory
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// NewCompositionRoot wires the application over gormDB, or over an in-memory database
// when gormDB is nil.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var uowFactory ports.UnitOfWorkFactory
	if gormDB != nil {
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		uowFactory = memory.NewUnitOfWorkFactory(memory.NewDatabase())
	}

	return CompositionRoot{
		config:     config,
		uowFactory: uowFactory,
		metrics:    metrics.NewCollector(),
		logger:     logger,
	}
}

func (c *CompositionRoot) Metrics() *metrics.Collector {
	return c.metrics
}

func (c *CompositionRoot) CreateSeedStoresCommandHandler() commands.SeedStoresCommandHandler {
	var f commands.StoreUoWFactory = FuncStoreUoWFactory(func() commands.StoreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedStoresCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllStoresQueryHandler() queries.GetAllStoresQueryHandler {
	return queries.NewGetAllStoresQueryHandler(c.uowFactory.Create().StoreRepository())
}

func (c *CompositionRoot) CreateGetCourierStoreEntrancesQueryHandler() queries.GetCourierStoreEntrancesQueryHandler {
	return queries.NewGetCourierStoreEntrancesQueryHandler(c.uowFactory.Create().StoreEntranceRepository())
}

// CreateGeofenceDirectory snapshots the store catalog. Stores added later are picked
// up on restart.
func (c *CompositionRoot) CreateGeofenceDirectory(ctx context.Context) (*services.GeofenceDirectory, error) {
	stores, err := c.CreateGetAllStoresQueryHandler().Stores(ctx, queries.NewGetAllStoresQuery())
	if err != nil {
		return nil, err
	}
	return services.NewGeofenceDirectory(stores, c.config.Tracking.StoreRadiusMeters)
}

func (c *CompositionRoot) CreateTracker(
	directory *services.GeofenceDirectory,
	observers ...tracking.EntranceObserver,
) (*tracking.Tracker, error) {
	return tracking.NewTracker(c.config.Tracking, directory, c.uowFactory,
		tracking.WithLogger(c.logger),
		tracking.WithMetrics(c.metrics),
		tracking.WithObservers(observers...),
	)
}

func (c *CompositionRoot) CreateRecordCourierLocationCommandHandler(
	tracker *tracking.Tracker,
) commands.RecordCourierLocationCommandHandler {
	return commands.NewRecordCourierLocationCommandHandler(tracker)
}

func (c *CompositionRoot) CreateGetTotalTravelDistanceQueryHandler(
	tracker *tracking.Tracker,
) queries.GetTotalTravelDistanceQueryHandler {
	return queries.NewGetTotalTravelDistanceQueryHandler(tracker)
}

func (c *CompositionRoot) CreateHTTPServer(tracker *tracking.Tracker) *httpin.Server {
	return httpin.NewServer(
		c.CreateRecordCourierLocationCommandHandler(tracker),
		c.CreateGetTotalTravelDistanceQueryHandler(tracker),
		c.CreateGetCourierStoreEntrancesQueryHandler(),
		c.CreateGetAllStoresQueryHandler(),
		c.config.Tracking.StoreRadiusMeters,
	)
}

func (c *CompositionRoot) RouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		Logger:          c.logger,
		MetricsHandler:  c.metrics.Handler(),
		RequestObserver: c.metrics,
		IngestRateLimit: c.config.IngestRateLimit,
		IngestBurst:     c.config.IngestBurst,
	}
}

type FuncStoreUoWFactory func() commands.StoreUoW

func (f FuncStoreUoWFactory) Create() commands.StoreUoW {
	return f()
}
