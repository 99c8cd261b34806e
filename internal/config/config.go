package config

import (
	"slices"
	"time"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
)

// Backends lists every supported storage backend.
var Backends = []string{BackendPostgres, BackendSQLite, BackendMongo}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects the backend that serves the API.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds settings for the embedded relational backend.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"dictionary.db"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI                    string        `yaml:"uri"                      env:"MONGO_URI"`
	Database               string        `yaml:"database"                 env:"MONGO_DATABASE"                 env-default:"dictionary"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout"          env:"MONGO_CONNECT_TIMEOUT"          env-default:"10s"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" env:"MONGO_SERVER_SELECTION_TIMEOUT" env-default:"5s"`
	MaxPoolSize            uint64        `yaml:"max_pool_size"            env:"MONGO_MAX_POOL_SIZE"            env-default:"50"`

	// Transactions wraps each cascade in a multi-document transaction.
	// Requires a replica set or sharded cluster.
	Transactions bool `yaml:"transactions" env:"MONGO_TRANSACTIONS" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IsSupportedBackend reports whether name is one of Backends.
func IsSupportedBackend(name string) bool {
	return slices.Contains(Backends, name)
}
