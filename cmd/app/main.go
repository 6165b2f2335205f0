package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"couriertracking/cmd"
	httpin "couriertracking/internal/adapters/in/http"
	"couriertracking/internal/adapters/in/mqtt"
	"couriertracking/internal/adapters/in/storefile"
	"couriertracking/internal/adapters/out/notify"
	"couriertracking/internal/adapters/out/postgres"
	"couriertracking/internal/core/application/tracking"
	"couriertracking/internal/core/application/usecases/commands"
	"couriertracking/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	seedStores(ctx, &app, configs.StoresFile, logger)

	directory, err := app.CreateGeofenceDirectory(ctx)
	if err != nil {
		log.Fatalf("Error building geofences: %v", err)
	}
	logger.Info("geofences loaded", "stores", directory.Len(), "default_radius_meters", configs.Tracking.StoreRadiusMeters)

	observers, closeObservers := createObservers(ctx, configs, logger)

	tracker, err := app.CreateTracker(directory, observers...)
	if err != nil {
		log.Fatalf("Error creating tracker: %v", err)
	}

	var subscriber *mqtt.LocationSubscriber
	if configs.MQTTBroker != "" {
		subscriber = startMQTTSubscriber(configs, &app, tracker, logger)
	}

	jobManager := jobs.NewJobManager(tracker, configs.ReaperSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	startWebServer(ctx, &app, tracker, configs.HTTPPort)

	// Ingest is stopped before the final flush so no ping lands after it.
	if subscriber != nil {
		subscriber.Stop()
	}
	jobManager.StopAll()

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if failed := tracker.FlushAll(flushCtx); failed > 0 {
		logger.Error("pending distance lost on shutdown", "couriers", failed)
	}
	closeObservers()
	logger.Info("shutdown complete")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func newLogger(configs cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configs.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if configs.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openDatabase returns nil for the in-memory driver.
func openDatabase(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if configs.DBDriver == cmd.DBDriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if configs.DBAutoMigrate {
		if err = postgres.Migrate(gormDB); err != nil {
			log.Fatalf("Error migrating database: %v", err)
		}
	}
	return gormDB
}

func seedStores(ctx context.Context, app *cmd.CompositionRoot, path string, logger *slog.Logger) {
	seeds, err := storefile.Load(path)
	if err != nil {
		log.Fatalf("Error loading stores: %v", err)
	}

	command, err := commands.NewSeedStoresCommand(seeds)
	if err != nil {
		log.Fatalf("Invalid store catalog %s: %v", path, err)
	}

	inserted, err := app.CreateSeedStoresCommandHandler().Handle(ctx, command)
	if err != nil {
		log.Fatalf("Error seeding stores: %v", err)
	}
	if inserted > 0 {
		logger.Info("stores seeded", "count", inserted, "file", path)
	}
}

// createObservers always logs entrances and adds the configured broker sinks.
func createObservers(
	ctx context.Context,
	configs cmd.Config,
	logger *slog.Logger,
) ([]tracking.EntranceObserver, func()) {
	observers := []tracking.EntranceObserver{notify.NewLoggingObserver(logger)}
	var closers []func() error

	if configs.RabbitMQURL != "" {
		conn, err := amqp.Dial(configs.RabbitMQURL)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		observer, closeChannel, err := notify.NewRabbitMQObserver(conn, configs.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Error creating RabbitMQ observer: %v", err)
		}
		observers = append(observers, observer)
		closers = append(closers, closeChannel, conn.Close)
		logger.Info("publishing store entrances to RabbitMQ", "exchange", configs.RabbitMQExchange)
	}

	if configs.RedisURL != "" {
		client, err := notify.NewRedisClient(ctx, configs.RedisURL)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		observers = append(observers, notify.NewRedisObserver(client, configs.RedisChannel))
		closers = append(closers, client.Close)
		logger.Info("publishing store entrances to Redis", "channel", configs.RedisChannel)
	}

	return observers, func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Warn("closing observer connection", "error", err)
			}
		}
	}
}

func startMQTTSubscriber(
	configs cmd.Config,
	app *cmd.CompositionRoot,
	tracker *tracking.Tracker,
	logger *slog.Logger,
) *mqtt.LocationSubscriber {
	client, err := mqtt.NewClient(configs.MQTTBroker, configs.MQTTClientID)
	if err != nil {
		log.Fatalf("Error connecting to MQTT broker: %v", err)
	}

	subscriber := mqtt.NewLocationSubscriber(client, configs.MQTTTopic,
		app.CreateRecordCourierLocationCommandHandler(tracker), logger)
	if err = subscriber.Start(); err != nil {
		log.Fatalf("Error subscribing to MQTT: %v", err)
	}
	return subscriber
}

// startWebServer blocks until ctx is cancelled, then shuts the server down.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, tracker *tracking.Tracker, port string) {
	e, err := httpin.NewRouter(app.CreateHTTPServer(tracker), app.RouterConfig())
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
