// Package forecast реализует HTTP-обработчик получения прогноза погоды.
//
// Обработчик читает query-параметры city и units, валидирует их на границе
// (units ограничен значениями m и f), делегирует получение прогноза
// бизнес-логике и возвращает ответ провайдера без изменений. Сбой провайдера
// транслируется в 404 с сообщением об ошибке.
package forecast

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/SuperSolik/weather-app/internal/http/response"
	"github.com/SuperSolik/weather-app/internal/lib/sl"
)

// Request — query-параметры запроса прогноза.
type Request struct {
	City  string `validate:"required"`
	Units string `validate:"required,oneof=m f"`
}

// Service описывает интерфейс бизнес-логики получения прогноза.
type Service interface {
	Get(ctx context.Context, city, units string) (json.RawMessage, error)
}

// Handler обрабатывает запросы прогноза погоды.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Прогноз погоды для города
// @Description Возвращает JSON прогноза погодного провайдера для указанного города, температура в цельсиях (units=m) или фаренгейтах (units=f).
// @Tags Forecast
// @Produce json
// @Param city query string true "Город"
// @Param units query string true "Единицы измерения" Enums(m, f)
// @Success 200 {object} map[string]any "Прогноз погоды"
// @Failure 401 {object} response.ErrorResponse "Неавторизованный запрос"
// @Failure 404 {object} response.ErrorResponse "Провайдер не смог вернуть прогноз"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации параметров"
// @Security BearerAuth
// @Router /forecast [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forecast"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := Request{
		City:  r.URL.Query().Get("city"),
		Units: r.URL.Query().Get("units"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("query params validated", slog.String("city", req.City), slog.String("units", req.Units))

	result, err := h.service.Get(r.Context(), req.City, req.Units)
	if err != nil {
		log.Error("failed to get forecast", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("forecast served", slog.String("city", req.City))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}
