// Package app собирает зависимости сервиса и управляет его жизненным циклом.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/ecommerce-backend/internal/cache"
	"github.com/magabrotheeeer/ecommerce-backend/internal/config"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/ecommerce-backend/internal/migrations"
	analyticsservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/analytics"
	authservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/auth"
	senderservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/sender"
	tokenservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/token"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

// App HTTP-приложение интернет-магазина.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает все зависимости приложения из конфига.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.AccessSecretKey, cfg.RefreshSecretKey,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenService := tokenservice.New(jwtMaker, cacheRedis, cfg.RefreshTokenTTL)

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	authService := authservice.New(db, tokenService, senderService,
		cfg.ClientURL, cfg.ResetTokenTTL, logger)
	analyticsService := analyticsservice.New(db, cacheRedis, logger)

	cookieWriter := cookies.New(cfg.Env, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, analyticsService, jwtMaker, db, cookieWriter)

	router.Get("/docs/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
