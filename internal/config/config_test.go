package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardDefaults(t *testing.T) {
	var cfg Dashboard
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "5002", cfg.Port)
	assert.Equal(t, "Asia/Kolkata", cfg.DisplayTimezone)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3*time.Minute, cfg.RateLimit.ExpiresIn)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadKafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	var cfg Dashboard
	require.NoError(t, Load(&cfg))

	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.brokerURLs())
}

func TestLoadAuthRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	var cfg Auth
	require.Error(t, Load(&cfg))

	t.Setenv("JWT_SECRET", "secret")
	require.NoError(t, Load(&cfg))
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}

func TestKafkaDefaultBrokers(t *testing.T) {
	assert.Equal(t, defaultKafkaBrokerURLs, Kafka{}.brokerURLs())
}
