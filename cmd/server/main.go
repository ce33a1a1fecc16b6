package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"rentier/docs"
	"rentier/internal/auth"
	"rentier/internal/cache"
	"rentier/internal/config"
	"rentier/internal/db"
	"rentier/internal/handler"
	"rentier/internal/model"
	"rentier/internal/oracle"
	"rentier/internal/repository"
	"rentier/internal/router"
	"rentier/internal/service"
)

// @title Rentier API
// @version 1.0
// @description Listing price prediction service with session-authenticated
// @description prediction and history endpoints.
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "rentier").Logger()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Entry{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Session plumbing: redis-backed store, signed cookie tokens.
	sessionStore := auth.NewRedisStore(cacheClient)
	tokens := auth.NewTokenService(cfg.SessionSecret)
	sessions := auth.NewManager(sessionStore, tokens)

	// The pre-trained estimator is an external black box behind HTTP.
	estimator := oracle.NewHTTPClient(cfg.OracleURL, cfg.OracleTimeout)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	// Services
	authService := service.NewAuthService(userRepo, sessions, log)
	predictionService := service.NewPredictionService(entryRepo, estimator, log)
	historyService := service.NewHistoryService(entryRepo, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	predictionHandler := handler.NewPredictionHandler(predictionService)
	historyHandler := handler.NewHistoryHandler(historyService)

	router.Register(e, cfg, sessions, authHandler, predictionHandler, historyHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
