package main

import (
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"user-dashboard-service/internal/api"
	"user-dashboard-service/internal/config"
	"user-dashboard-service/internal/repository"
	"user-dashboard-service/internal/service"
	"user-dashboard-service/migrations"
)

func main() {
	var cfg config.Auth
	if err := config.Load(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := repository.Connect(cfg.Database)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := migrations.AutoMigrateAccounts(3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate accounts table")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	secret := []byte(cfg.JWTSecret)
	accountRepo := repository.NewAccountRepository(db)
	accountService := service.NewAccountService(accountRepo, service.NewRedisSessionStore(rdb), secret, cfg.TokenTTL)
	accountHandler := api.NewAccountHandler(accountService, secret)

	e := api.NewServer(cfg.RateLimit)

	// Routes
	e.GET("/health", api.Health("auth-service"))
	accountHandler.Register(e)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
