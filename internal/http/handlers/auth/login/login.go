// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// Учетные данные принимаются form-encoded (OAuth2 password flow), проверяются
// через бизнес-логику, при успехе возвращается JSON с access_token типа bearer.
// Неизвестное имя и неверный пароль наружу не различаются.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/SuperSolik/weather-app/internal/http/response"
	"github.com/SuperSolik/weather-app/internal/lib/sl"
	authservice "github.com/SuperSolik/weather-app/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Username string `validate:"required,max=255"`
	Password string `validate:"required,max=255"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по имени и паролю из form-encoded тела. Возвращает access_token.
// @Tags Auth
// @Accept  x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Имя пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} map[string]string "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req := Request{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	log.Info("request form decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid username or password"))
			return
		}
		log.Error("could not generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
