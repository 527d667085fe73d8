package migrations

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var retryDelay = 1 * time.Second

var usersDDL = map[string]string{
	"mysql": `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL
		);
	`,
	"sqlite3": `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL
		);
	`,
}

var accountsDDL = map[string]string{
	"mysql": `
		CREATE TABLE IF NOT EXISTS accounts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL
		);
	`,
	"sqlite3": `
		CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL
		);
	`,
}

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sqlx.DB) error {
	return migrate("users", usersDDL, retries, db)
}

// AutoMigrateAccounts creates the accounts table if it does not exist.
func AutoMigrateAccounts(retries int, db *sqlx.DB) error {
	return migrate("accounts", accountsDDL, retries, db)
}

func migrate(table string, ddl map[string]string, retries int, db *sqlx.DB) error {
	query, ok := ddl[db.DriverName()]
	if !ok {
		return fmt.Errorf("no %s schema for driver %q", table, db.DriverName())
	}

	_, err := db.Exec(query)
	// Retry creating the table
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(retryDelay)
		_, err = db.Exec(query)
	}
	if err != nil {
		return fmt.Errorf("create %s table: %w", table, err)
	}

	log.Info().Str("table", table).Msg("table is ready")
	return nil
}
