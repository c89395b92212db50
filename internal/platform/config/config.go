// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize bounds request headers. Lookups carry no body.
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultMongoMaxPoolSize is the default maximum connections per server.
	DefaultMongoMaxPoolSize = 100

	// DefaultMongoBatchSize is the default cursor batch size for streamed queries.
	DefaultMongoBatchSize = 500

	// DefaultMongoCircuitMaxFailures is the default consecutive store failures before the circuit opens.
	DefaultMongoCircuitMaxFailures = 5

	// DefaultMongoCircuitHalfOpenLimit is the default successes to close the circuit.
	DefaultMongoCircuitHalfOpenLimit = 3

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Store drivers.
const (
	// StoreDriverMongo serves quotes from MongoDB.
	StoreDriverMongo = "mongo"

	// StoreDriverMemory serves quotes from an in-process dataset loaded at startup.
	StoreDriverMemory = "memory"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Store     StoreConfig     `koanf:"store"     validate:"required"`
	Mongo     MongoConfig     `koanf:"mongo"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"min=0s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"min=0s"`
	CheckTimeout    time.Duration `koanf:"check_timeout"    validate:"min=0s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// StoreConfig selects the quote store backing the repository port.
type StoreConfig struct {
	Driver   string `koanf:"driver"    validate:"required,oneof=mongo memory"`
	SeedFile string `koanf:"seed_file" validate:"required_if=Driver memory"`
}

// MongoConfig contains MongoDB connection and query settings.
type MongoConfig struct {
	URI                    string               `koanf:"uri"                      validate:"required_if=Enabled true,omitempty,startswith=mongodb"`
	Database               string               `koanf:"database"                 validate:"required_if=Enabled true"`
	Collection             string               `koanf:"collection"               validate:"required_if=Enabled true"`
	ConnectTimeout         time.Duration        `koanf:"connect_timeout"          validate:"min=0s"`
	ServerSelectionTimeout time.Duration        `koanf:"server_selection_timeout" validate:"min=0s"`
	QueryTimeout           time.Duration        `koanf:"query_timeout"            validate:"min=0s"`
	MaxPoolSize            uint64               `koanf:"max_pool_size"            validate:"omitempty,min=1"`
	BatchSize              int32                `koanf:"batch_size"               validate:"omitempty,min=1"`
	EnsureIndexes          bool                 `koanf:"ensure_indexes"`
	CircuitBreaker         CircuitBreakerConfig `koanf:"circuit_breaker"`

	// Enabled is derived from the store driver after loading.
	Enabled bool `koanf:"-"`
}

// CircuitBreakerConfig contains circuit breaker settings for store calls.
type CircuitBreakerConfig struct {
	Enabled       bool          `koanf:"enabled"`
	MaxFailures   int           `koanf:"max_failures"    validate:"required_if=Enabled true,omitempty,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required_if=Enabled true,omitempty,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required_if=Enabled true,omitempty,min=1"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotes-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "0s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "0s",
		"server.check_timeout":    "2s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotes-service",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"store.driver":    StoreDriverMongo,
		"store.seed_file": "",

		"mongo.uri":                             "mongodb://localhost:27017",
		"mongo.database":                        "quotes",
		"mongo.collection":                      "quotes",
		"mongo.connect_timeout":                 "10s",
		"mongo.server_selection_timeout":        "5s",
		"mongo.query_timeout":                   "0s",
		"mongo.max_pool_size":                   DefaultMongoMaxPoolSize,
		"mongo.batch_size":                      DefaultMongoBatchSize,
		"mongo.ensure_indexes":                  true,
		"mongo.circuit_breaker.enabled":         true,
		"mongo.circuit_breaker.max_failures":    DefaultMongoCircuitMaxFailures,
		"mongo.circuit_breaker.timeout":         "30s",
		"mongo.circuit_breaker.half_open_limit": DefaultMongoCircuitHalfOpenLimit,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix.
	// APP_MONGO_CIRCUIT_BREAKER_MAX_FAILURES cannot be split on "_" alone,
	// so known multi-word keys are matched first.
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Mongo.Enabled = cfg.Store.Driver == StoreDriverMongo

	return &cfg, nil
}

// envKey maps APP_SERVER_READ_TIMEOUT to server.read_timeout.
// The first segment is the section; the remainder is resolved against the
// known keys so that underscores inside key names survive.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))

	for known := range defaults() {
		if strings.ReplaceAll(known, ".", "_") == key {
			return known
		}
	}

	return strings.ReplaceAll(key, "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
