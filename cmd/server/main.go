package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"ticketdesk/docs" // swagger docs
	"ticketdesk/internal/auth"
	"ticketdesk/internal/cache"
	"ticketdesk/internal/config"
	"ticketdesk/internal/db"
	"ticketdesk/internal/handler"
	"ticketdesk/internal/logger"
	"ticketdesk/internal/metrics"
	"ticketdesk/internal/repository"
	"ticketdesk/internal/router"
	"ticketdesk/internal/service"
)

// @title Ticket Report API
// @version 1.0.0
// @description Ticket tracking API with categories, an audit timeline and JWT authentication.
// @host localhost:3001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	started := time.Now()
	cfg := config.Load()
	l := logger.New(cfg.IsDev())

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		l.Fatal().Err(err).Msg("database init failed")
	}

	if cfg.ResetDB {
		l.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			l.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		l.Fatal().Err(err).Msg("migrate database")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		l.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching disabled until it recovers")
	}
	cancelPing()

	rec := metrics.NewRecorder(prometheus.NewRegistry())

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	ticketService := service.NewTicketService(ticketRepo, rec)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	router.Register(
		e,
		cfg,
		l,
		jwtService,
		userService,
		rec,
		handler.NewHealthHandler(started),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewTicketHandler(ticketService),
		handler.NewCategoryHandler(categoryService),
	)

	go func() {
		addr := ":" + cfg.ServerPort
		l.Info().Str("addr", addr).Str("env", cfg.Env).Msg("api listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("server shutdown")
	}
	if err := cacheClient.Close(); err != nil {
		l.Error().Err(err).Msg("close redis")
	}
	if err := db.Close(gormDB); err != nil {
		l.Error().Err(err).Msg("close database")
	}
	l.Info().Msg("shutdown complete")
}
