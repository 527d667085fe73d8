package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"user-dashboard-service/internal/config"
)

// ErrNotFound is returned when the targeted row does not exist.
var ErrNotFound = errors.New("not found")

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

var retryDelay = 3 * time.Second

// DSN builds the driver specific data source name for cfg.
func DSN(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Pass
		mc.Net = "tcp"
		mc.Addr = cfg.Host + ":" + cfg.Port
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	case DriverSQLite:
		return "file:" + cfg.Path + "?_foreign_keys=on&_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Connect opens the pool and pings it, retrying until cfg.Retries attempts are used up.
func Connect(cfg config.Database) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.Retries, 1)
	var db *sqlx.DB
	for i := 0; i < attempts; i++ {
		db, err = sqlx.Connect(cfg.Driver, dsn)
		if err == nil {
			log.Info().Str("driver", cfg.Driver).Str("database", cfg.Name).Msg("connected to database")
			return db, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Str("driver", cfg.Driver).Msg("failed to connect to database")
		if i+1 < attempts {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to %s database after %d attempts: %w", cfg.Driver, attempts, err)
}
