// Package health реализует HTTP-обработчик проверки работоспособности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SuperSolik/weather-app/internal/http/response"
)

// Pinger описывает зависимость, доступность которой проверяет обработчик.
type Pinger interface {
	Ping() error
}

// Handler обрабатывает запросы проверки здоровья.
type Handler struct {
	log   *slog.Logger
	db    Pinger
	cache Pinger
}

// New создает новый Handler с зависимостями для проверки.
func New(log *slog.Logger, db, cache Pinger) *Handler {
	return &Handler{
		log:   log,
		db:    db,
		cache: cache,
	}
}

// ServeHTTP godoc
// @Summary Проверка работоспособности
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "Зависимость недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.db.Ping(); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), slog.Any("err", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}
	if err := h.cache.Ping(); err != nil {
		h.log.Error("cache is not ready", slog.String("op", op), slog.Any("err", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("cache is not ready"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
