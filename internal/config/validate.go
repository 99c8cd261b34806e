package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if !IsSupportedBackend(c.Storage.Backend) {
		return fmt.Errorf("storage.backend must be one of %s (got %q)",
			strings.Join(Backends, ", "), c.Storage.Backend)
	}

	switch c.Storage.Backend {
	case BackendPostgres:
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite: path is required")
		}
	case BackendMongo:
		if err := c.Mongo.validate(); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", d.MinConns)
	}
	return nil
}

func (m *MongoConfig) validate() error {
	if m.URI == "" {
		return fmt.Errorf("uri is required")
	}
	if !strings.HasPrefix(m.URI, "mongodb://") && !strings.HasPrefix(m.URI, "mongodb+srv://") {
		return fmt.Errorf("uri must start with mongodb:// or mongodb+srv://")
	}
	if strings.TrimSpace(m.Database) == "" {
		return fmt.Errorf("database is required")
	}
	return nil
}
