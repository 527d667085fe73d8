package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"user-dashboard-service/internal/config"
	"user-dashboard-service/internal/consumer"
)

func main() {
	var cfg config.Audit
	if err := config.Load(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	log.Info().Str("topic", cfg.Kafka.UserTopic).Str("group", cfg.Kafka.GroupID).Msg("audit consumer started")
	if err := consumer.NewConsumer(reader).Run(ctx); err != nil {
		log.Error().Err(err).Msg("audit consumer stopped")
	}
}
