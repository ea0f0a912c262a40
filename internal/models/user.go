// Package models содержит доменную модель пользователя системы.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата создания учетной записи
}
