// Package weatherapp предоставляет маршруты приложения.
package weatherapp

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/SuperSolik/weather-app/internal/cache"
	"github.com/SuperSolik/weather-app/internal/http/handlers/auth/login"
	"github.com/SuperSolik/weather-app/internal/http/handlers/auth/signup"
	forecasthandler "github.com/SuperSolik/weather-app/internal/http/handlers/forecast"
	"github.com/SuperSolik/weather-app/internal/http/handlers/health"
	"github.com/SuperSolik/weather-app/internal/http/middlewarectx"
	authservice "github.com/SuperSolik/weather-app/internal/services/auth"
	forecastservice "github.com/SuperSolik/weather-app/internal/services/forecast"
	"github.com/SuperSolik/weather-app/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService,
	forecastService *forecastservice.ForecastService, db *storage.Storage, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/signup", signup.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/forecast", forecasthandler.New(logger, forecastService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db.DB, cacheRedis).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
