// Package signup реализует HTTP-обработчик регистрации нового пользователя.
//
// Обработчик декодирует JSON с учетными данными, валидирует поля,
// делегирует создание пользователя бизнес-логике и сообщает о конфликте
// имен статусом 422.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/SuperSolik/weather-app/internal/http/response"
	"github.com/SuperSolik/weather-app/internal/lib/sl"
	"github.com/SuperSolik/weather-app/internal/storage"
)

// Request — входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, password string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя с указанными username и password.
// @Tags Auth
// @Accept  json
// @Produce json
// @Param request body Request true "Данные для регистрации"
// @Success 200 {object} map[string]string "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или имя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if _, err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("user already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("created new user", slog.String("username", req.Username))
	render.JSON(w, r, map[string]string{"msg": "user created"})
}
