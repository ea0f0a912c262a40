// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	WeatherAPI              `yaml:"weatherapi"`
	ForecastCache           `yaml:"forecast_cache"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
// Нулевой TokenTTL означает токен без срока действия.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"WEATHER_JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
}

// WeatherAPI структура для настройки клиента погодного провайдера
type WeatherAPI struct {
	APIKey      string        `yaml:"api_key" env:"WEATHER_API_KEY"`
	APIEndpoint string        `yaml:"api_endpoint" env:"WEATHER_API_ENDPOINT" env-default:"http://api.weatherstack.com/forecast"`
	APITimeout  time.Duration `yaml:"api_timeout" env-default:"10s"`
}

// ForecastCache структура для настройки кеширования прогнозов
type ForecastCache struct {
	KeyPrefix   string        `yaml:"key_prefix" env:"CACHE_KEY_PREFIX" env-default:"weather-app-cache"`
	ForecastTTL time.Duration `yaml:"forecast_ttl" env:"FORECAST_CACHE_TTL" env-default:"60s"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
