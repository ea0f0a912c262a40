// Package weatherapp собирает приложение: хранилище, кеш, клиент погодного
// провайдера, сервисы и HTTP-сервер с graceful shutdown.
package weatherapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/SuperSolik/weather-app/internal/cache"
	"github.com/SuperSolik/weather-app/internal/config"
	"github.com/SuperSolik/weather-app/internal/lib/jwt"
	"github.com/SuperSolik/weather-app/internal/migrations"
	authservice "github.com/SuperSolik/weather-app/internal/services/auth"
	forecastservice "github.com/SuperSolik/weather-app/internal/services/forecast"
	"github.com/SuperSolik/weather-app/internal/storage"
	"github.com/SuperSolik/weather-app/internal/weatherapi"
)

// App владеет долгоживущими ресурсами процесса: HTTP-сервером,
// подключением к базе и кешу. Ресурсы создаются один раз при старте
// и освобождаются при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует зависимости приложения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection, cfg.KeyPrefix)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	weatherClient := weatherapi.NewClient(cfg.APIKey, cfg.APIEndpoint, cfg.APITimeout)

	authService := authservice.NewAuthService(db, jwtMaker)
	forecastService := forecastservice.NewForecastService(weatherClient, cacheRedis, cfg.ForecastTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, forecastService, db, cacheRedis)

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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database connection", slog.Any("err", closeErr))
		}
		if closeErr := a.cache.Close(); closeErr != nil {
			a.logger.Error("failed to close cache connection", slog.Any("err", closeErr))
		}
		return err
	}
}
