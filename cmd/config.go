package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"couriertracking/internal/core/application/tracking"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBAutoMigrate bool

	StoresFile string

	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string

	RabbitMQURL      string
	RabbitMQExchange string

	RedisURL     string
	RedisChannel string

	IngestRateLimit float64
	IngestBurst     int
	ReaperSchedule  string

	LogLevel  string
	LogFormat string

	Tracking tracking.Config
}

// LoadConfig reads the process configuration through lookup (os.LookupEnv in
// production), applying defaults for unset variables. Malformed values are reported
// together.
func LoadConfig(lookup func(string) (string, bool)) (Config, error) {
	p := envParser{lookup: lookup}

	cfg := Config{
		HTTPPort:         p.str("HTTP_PORT", "8080"),
		DBDriver:         strings.ToLower(p.str("DB_DRIVER", DBDriverPostgres)),
		DBHost:           p.str("DB_HOST", "localhost"),
		DBPort:           p.str("DB_PORT", "5432"),
		DBUser:           p.str("DB_USER", "postgres"),
		DBPassword:       p.str("DB_PASSWORD", ""),
		DBName:           p.str("DB_NAME", "courier_tracking"),
		DBSslMode:        p.str("DB_SSLMODE", "disable"),
		DBAutoMigrate:    p.boolean("DB_AUTO_MIGRATE", true),
		StoresFile:       p.str("STORES_FILE", "data/stores.json"),
		MQTTBroker:       p.str("MQTT_BROKER", ""),
		MQTTClientID:     p.str("MQTT_CLIENT_ID", "courier-tracking"),
		MQTTTopic:        p.str("MQTT_TOPIC", "couriers/+/location"),
		RabbitMQURL:      p.str("RABBITMQ_URL", ""),
		RabbitMQExchange: p.str("RABBITMQ_EXCHANGE", "courier.events"),
		RedisURL:         p.str("REDIS_URL", ""),
		RedisChannel:     p.str("REDIS_CHANNEL", "store-entrances"),
		IngestRateLimit:  p.float("INGEST_RATE_LIMIT", 0),
		IngestBurst:      int(p.uint("INGEST_BURST", 0)),
		ReaperSchedule:   p.optional("REAPER_SCHEDULE", "@every 1m"),
		LogLevel:         strings.ToLower(p.str("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(p.str("LOG_FORMAT", "json")),
	}

	defaults := tracking.DefaultConfig()
	cfg.Tracking = tracking.Config{
		StoreRadiusMeters: p.float("TRACKING_STORE_RADIUS_METERS", defaults.StoreRadiusMeters),
		EntranceCooldown:  p.millis("TRACKING_ENTRANCE_COOLDOWN_MS", defaults.EntranceCooldown),
		SyncFrequency:     p.uint("TRACKING_SYNC_FREQUENCY", defaults.SyncFrequency),
		SyncTimeout:       p.millis("TRACKING_SYNC_TIMEOUT_MS", defaults.SyncTimeout),
		IdleThreshold:     p.millis("TRACKING_IDLE_THRESHOLD_MS", defaults.IdleThreshold),
		ReapEvery:         p.uint("TRACKING_REAP_EVERY", defaults.ReapEvery),
	}

	if cfg.DBDriver != DBDriverPostgres && cfg.DBDriver != DBDriverMemory {
		p.errList = append(p.errList, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}
	if cfg.IngestRateLimit < 0 {
		p.errList = append(p.errList, errors.New("INGEST_RATE_LIMIT: must not be negative"))
	}
	if err := cfg.Tracking.Validate(); err != nil {
		p.errList = append(p.errList, err)
	}

	return cfg, errors.Join(p.errList...)
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type envParser struct {
	lookup  func(string) (string, bool)
	errList []error
}

func (p *envParser) get(key string) string {
	v, _ := p.lookup(key)
	return strings.TrimSpace(v)
}

func (p *envParser) str(key, def string) string {
	if v := p.get(key); v != "" {
		return v
	}
	return def
}

// optional keeps an explicitly empty value, which disables the feature.
func (p *envParser) optional(key, def string) string {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	return strings.TrimSpace(v)
}

func (p *envParser) boolean(key string, def bool) bool {
	v := p.get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errList = append(p.errList, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (p *envParser) float(key string, def float64) float64 {
	v := p.get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errList = append(p.errList, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *envParser) uint(key string, def uint64) uint64 {
	v := p.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.errList = append(p.errList, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *envParser) millis(key string, def time.Duration) time.Duration {
	v := p.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errList = append(p.errList, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return time.Duration(n) * time.Millisecond
}
