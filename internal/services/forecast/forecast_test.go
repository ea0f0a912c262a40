package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	services "github.com/SuperSolik/weather-app/internal/services/forecast"
)

// Мок для провайдера прогнозов
type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) GetForecast(ctx context.Context, city, units string) (json.RawMessage, error) {
	args := m.Called(ctx, city, units)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// fakeCache — кеш на map для проверки попаданий и промахов
type fakeCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	val, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(val, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	c.setKeys = append(c.setKeys, key)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestForecastService_CacheMissCallsProviderAndStores(t *testing.T) {
	forecast := json.RawMessage(`{"current":{"temperature":15}}`)

	provider := new(ProviderMock)
	provider.On("GetForecast", mock.Anything, "London", "m").Return(forecast, nil).Once()

	cache := newFakeCache()
	svc := services.NewForecastService(provider, cache, time.Minute, newNoopLogger())

	result, err := svc.Get(context.Background(), "London", "m")
	require.NoError(t, err)
	assert.Equal(t, forecast, result)

	assert.Equal(t, []string{"forecast:London:m"}, cache.setKeys)
	provider.AssertExpectations(t)
}

func TestForecastService_CacheHitSkipsProvider(t *testing.T) {
	forecast := json.RawMessage(`{"current":{"temperature":15}}`)

	provider := new(ProviderMock)
	cache := newFakeCache()
	cache.data["forecast:London:m"] = forecast

	svc := services.NewForecastService(provider, cache, time.Minute, newNoopLogger())

	result, err := svc.Get(context.Background(), "London", "m")
	require.NoError(t, err)
	assert.JSONEq(t, string(forecast), string(result))

	provider.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestForecastService_DifferentUnitsUseDifferentKeys(t *testing.T) {
	metric := json.RawMessage(`{"units":"m"}`)
	fahrenheit := json.RawMessage(`{"units":"f"}`)

	provider := new(ProviderMock)
	provider.On("GetForecast", mock.Anything, "London", "m").Return(metric, nil).Once()
	provider.On("GetForecast", mock.Anything, "London", "f").Return(fahrenheit, nil).Once()

	cache := newFakeCache()
	svc := services.NewForecastService(provider, cache, time.Minute, newNoopLogger())

	_, err := svc.Get(context.Background(), "London", "m")
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), "London", "f")
	require.NoError(t, err)

	assert.Equal(t, []string{"forecast:London:m", "forecast:London:f"}, cache.setKeys)
	provider.AssertExpectations(t)
}

func TestForecastService_ProviderErrorIsNotCached(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetForecast", mock.Anything, "UnknownCity", "m").
		Return(nil, errors.New("city not found")).Once()

	cache := newFakeCache()
	svc := services.NewForecastService(provider, cache, time.Minute, newNoopLogger())

	result, err := svc.Get(context.Background(), "UnknownCity", "m")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, cache.setKeys)
}

func TestForecastService_CacheFailuresDoNotBreakRequest(t *testing.T) {
	forecast := json.RawMessage(`{"current":{"temperature":15}}`)

	provider := new(ProviderMock)
	provider.On("GetForecast", mock.Anything, "London", "m").Return(forecast, nil).Once()

	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	svc := services.NewForecastService(provider, cache, time.Minute, newNoopLogger())

	result, err := svc.Get(context.Background(), "London", "m")
	require.NoError(t, err)
	assert.Equal(t, forecast, result)
	provider.AssertExpectations(t)
}
