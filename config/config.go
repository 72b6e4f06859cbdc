package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds every setting read from the environment.
type Config struct {
	HTTPAddr string

	StorageDriver  string
	BoltPath       string
	PostgresDSN    string
	PostgresDriver string
	SQLitePath     string

	Sectors   []string
	SortViews bool

	ReportFormat string
	ArchiveDir   string
	ArchiveCron  string

	LogMode  string
	LogFile  string
	Timezone string
}

// Load reads env files and then the process environment. Without envFiles the
// default .env is loaded when present; files named explicitly must exist.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		HTTPAddr:       get("HTTP_ADDR", ":8080"),
		StorageDriver:  strings.ToLower(get("STORAGE_DRIVER", StorageBolt)),
		BoltPath:       get("BOLT_PATH", "balanco.db"),
		PostgresDSN:    get("POSTGRES_DSN", ""),
		PostgresDriver: strings.ToLower(get("POSTGRES_DRIVER", "pgx")),
		SQLitePath:     get("SQLITE_PATH", "balanco.sqlite"),
		SortViews:      cast.ToBool(get("BALANCO_SORT_VIEWS", "true")),
		ReportFormat:   strings.ToLower(get("REPORT_FORMAT", "pdf")),
		ArchiveDir:     get("ARCHIVE_DIR", "relatorios"),
		ArchiveCron:    get("ARCHIVE_CRON", ""),
		LogMode:        get("LOG_MODE", "development"),
		LogFile:        get("LOG_FILE", ""),
		Timezone:       get("TIMEZONE", "America/Sao_Paulo"),
	}
	if raw := get("BALANCO_SECTORS", ""); raw != "" {
		cfg.Sectors = cast.ToStringSlice(strings.ReplaceAll(raw, ",", " "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot fall back to a default.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageBolt, StorageSQLite:
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_DRIVER=postgres")
		}
		if c.PostgresDriver != "pgx" && c.PostgresDriver != "pq" {
			return fmt.Errorf("unsupported POSTGRES_DRIVER %q", c.PostgresDriver)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// Location resolves Timezone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
