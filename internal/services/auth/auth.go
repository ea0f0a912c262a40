// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/SuperSolik/weather-app/internal/lib/jwt"
	"github.com/SuperSolik/weather-app/internal/lib/password"
	"github.com/SuperSolik/weather-app/internal/models"
)

// Ошибки аутентификации. Причина (нет пользователя, неверный пароль,
// битый токен) намеренно не различается, чтобы исключить перебор имен.
var (
	// ErrInvalidCredentials возвращается при любой неудачной попытке входа.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken возвращается при любой неудачной проверке токена.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// При занятом username возвращает storage.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken проверяет JWT и возвращает актуального пользователя из хранилища.
//
// Любой сбой — битая подпись, истекший токен, удаленный пользователь —
// сворачивается в ErrInvalidToken.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
