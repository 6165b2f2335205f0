package cmd

import (
	"testing"
	"time"

	"couriertracking/internal/core/application/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DBDriverPostgres, cfg.DBDriver)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, "data/stores.json", cfg.StoresFile)
	assert.Equal(t, "couriers/+/location", cfg.MQTTTopic)
	assert.Equal(t, "courier.events", cfg.RabbitMQExchange)
	assert.Equal(t, "store-entrances", cfg.RedisChannel)
	assert.Equal(t, "@every 1m", cfg.ReaperSchedule)
	assert.Empty(t, cfg.MQTTBroker)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Zero(t, cfg.IngestRateLimit)
	assert.Equal(t, tracking.DefaultConfig(), cfg.Tracking)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(env(map[string]string{
		"HTTP_PORT":                     "9090",
		"DB_DRIVER":                     "Memory",
		"DB_AUTO_MIGRATE":               "false",
		"INGEST_RATE_LIMIT":             "50.5",
		"INGEST_BURST":                  "100",
		"REAPER_SCHEDULE":               "",
		"TRACKING_STORE_RADIUS_METERS":  "150",
		"TRACKING_ENTRANCE_COOLDOWN_MS": "30000",
		"TRACKING_SYNC_FREQUENCY":       "5",
		"TRACKING_SYNC_TIMEOUT_MS":      "1000",
		"TRACKING_IDLE_THRESHOLD_MS":    "600000",
		"TRACKING_REAP_EVERY":           "7",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, DBDriverMemory, cfg.DBDriver)
	assert.False(t, cfg.DBAutoMigrate)
	assert.InDelta(t, 50.5, cfg.IngestRateLimit, 0)
	assert.Equal(t, 100, cfg.IngestBurst)
	assert.Empty(t, cfg.ReaperSchedule, "an explicitly empty schedule disables the job")
	assert.Equal(t, tracking.Config{
		StoreRadiusMeters: 150,
		EntranceCooldown:  30 * time.Second,
		SyncFrequency:     5,
		SyncTimeout:       time.Second,
		IdleThreshold:     10 * time.Minute,
		ReapEvery:         7,
	}, cfg.Tracking)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	_, err := LoadConfig(env(map[string]string{
		"DB_DRIVER":               "mysql",
		"DB_AUTO_MIGRATE":         "sometimes",
		"TRACKING_SYNC_FREQUENCY": "ten",
		"TRACKING_REAP_EVERY":     "0",
		"INGEST_RATE_LIMIT":       "-1",
	}))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "DB_DRIVER")
	assert.Contains(t, msg, "DB_AUTO_MIGRATE")
	assert.Contains(t, msg, "TRACKING_SYNC_FREQUENCY")
	assert.Contains(t, msg, "reapEvery")
	assert.Contains(t, msg, "INGEST_RATE_LIMIT")
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
