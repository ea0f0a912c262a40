package storage

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SuperSolik/weather-app/internal/migrations"
	"github.com/SuperSolik/weather-app/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя с заданным uid
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, passwordHash string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, password_hash)
		VALUES ($1, $2, $3)`,
		userUID, username, passwordHash)
	require.NoError(t, err)
}

// GetTestUser возвращает стандартные тестовые данные пользователя
func GetTestUser() models.User {
	return models.User{
		UID:          uuid.New().String(),
		Username:     "testuser",
		PasswordHash: "$2a$10$hashedpasswordhashedpassword",
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyUserCount проверяет количество пользователей с данным username
func (v *TestVerification) VerifyUserCount(t *testing.T, username string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и накатывает на нее миграции приложения.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := pgcontainer.Run(ctx, "postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	err = migrations.Run(storage.DB, "../../migrations")
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
