// Package app предоставляет маршруты для основного приложения.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/ecommerce-backend/internal/http/cookies"
	analyticshandler "github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/analytics"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/ecommerce-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/jwt"
	analyticsservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/analytics"
	authservice "github.com/magabrotheeeer/ecommerce-backend/internal/services/auth"
	"github.com/magabrotheeeer/ecommerce-backend/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service, analyticsService *analyticsservice.Service,
	jwtMaker jwt.Maker, db *repository.Storage, cookieWriter cookies.Writer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/signup", signup.New(logger, authService, cookieWriter).ServeHTTP)
		r.Post("/login", login.New(logger, authService, cookieWriter).ServeHTTP)
		r.Post("/logout", logout.New(logger, authService, cookieWriter).ServeHTTP)
		r.Post("/refresh-token", refresh.New(logger, authService, cookieWriter).ServeHTTP)
		r.Post("/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
		r.Post("/reset-password/{token}", resetpassword.New(logger, authService).ServeHTTP)

		// Группа с проверкой access-токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(jwtMaker, db, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", profile.New(logger).ServeHTTP)

			// Группа только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/analytics", analyticshandler.New(logger, analyticsService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
