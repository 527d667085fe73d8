package main

import (
	"github.com/rs/zerolog/log"

	"user-dashboard-service/internal/api"
	"user-dashboard-service/internal/config"
	"user-dashboard-service/internal/repository"
	"user-dashboard-service/internal/service"
	"user-dashboard-service/migrations"
)

func main() {
	var cfg config.Dashboard
	if err := config.Load(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	loc, err := service.LoadDisplayLocation(cfg.DisplayTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load display timezone")
	}

	db, err := repository.Connect(cfg.Database)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate users table")
	}

	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPublisher := service.NewKafkaPublisher(config.NewKafkaWriter(cfg.Kafka))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, publisher, loc, cfg.PageSize)
	userHandler := api.NewUserHandler(userService)

	e := api.NewServer(cfg.RateLimit)

	// Routes
	e.GET("/users/health", api.Health("dashboard-service"))
	userHandler.Register(e)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
