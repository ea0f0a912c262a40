// Package services содержит бизнес-логику получения прогноза погоды с кешированием.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// ForecastProvider описывает клиент погодного провайдера.
type ForecastProvider interface {
	// GetForecast возвращает прогноз для города в заданных единицах измерения.
	GetForecast(ctx context.Context, city, units string) (json.RawMessage, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// ForecastService реализует получение прогноза: сначала кеш, при промахе —
// один запрос к провайдеру с сохранением результата.
type ForecastService struct {
	provider ForecastProvider
	cache    Cache
	ttl      time.Duration
	log      *slog.Logger
}

// NewForecastService создает новый экземпляр ForecastService.
func NewForecastService(provider ForecastProvider, cache Cache, ttl time.Duration, log *slog.Logger) *ForecastService {
	return &ForecastService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

// cacheKey строит ключ кеша из параметров, влияющих на содержимое ответа.
// Личность пользователя в ключ не входит.
func cacheKey(city, units string) string {
	return fmt.Sprintf("forecast:%s:%s", city, units)
}

// Get возвращает прогноз для города, используя кеш или провайдера.
//
// Ответ провайдера кешируется только при успехе; сбой запроса
// возвращается вызывающему без повторных попыток.
func (s *ForecastService) Get(ctx context.Context, city, units string) (json.RawMessage, error) {
	key := cacheKey(city, units)

	var cached json.RawMessage
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read forecast from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		s.log.Info("forecast cache hit", slog.String("key", key))
		return cached, nil
	}

	result, err := s.provider.GetForecast(ctx, city, units)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, s.ttl); err != nil {
		s.log.Warn("failed to cache forecast", slog.String("key", key), slog.Any("err", err))
	}

	return result, nil
}
