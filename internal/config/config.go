package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Database selects the storage driver and its connection settings.
// Driver is "mysql" in production; "sqlite3" runs against a local file.
type Database struct {
	Driver  string `env:"DB_DRIVER" envDefault:"mysql"`
	Host    string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port    string `env:"DB_PORT" envDefault:"3306"`
	User    string `env:"DB_USER" envDefault:"root"`
	Pass    string `env:"DB_PASSWORD"`
	Name    string `env:"DB_NAME" envDefault:"user-db"`
	Path    string `env:"DB_PATH" envDefault:"users.db"`
	Retries int    `env:"DB_RETRIES" envDefault:"10"`
}

type RateLimit struct {
	Rate      float64       `env:"RATE_LIMIT" envDefault:"10"`
	Burst     int           `env:"RATE_BURST" envDefault:"20"`
	ExpiresIn time.Duration `env:"RATE_EXPIRES_IN" envDefault:"3m"`
}

type Kafka struct {
	Brokers   []string `env:"KAFKA_BROKERS" envSeparator:","`
	UserTopic string   `env:"KAFKA_USER_TOPIC" envDefault:"user-topic"`
	GroupID   string   `env:"KAFKA_GROUP_ID" envDefault:"audit-service-group"`
}

type Dashboard struct {
	Port            string `env:"PORT" envDefault:"5002"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE" envDefault:"Asia/Kolkata"`
	PageSize        int    `env:"PAGE_SIZE" envDefault:"20"`
	Database        Database
	RateLimit       RateLimit
	Kafka           Kafka
}

type Auth struct {
	Port      string        `env:"PORT" envDefault:"5000"`
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Database  Database
	RateLimit RateLimit
}

type Audit struct {
	Kafka Kafka
}

// Load parses environment variables into target.
func Load(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
