package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SuperSolik/weather-app/internal/storage"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignupHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantMsg        string
		wantError      string
	}{
		{
			name:           "valid signup",
			requestBody:    Request{Username: "alice", Password: "secret"},
			mockUID:        "550e8400-e29b-41d4-a716-446655440000",
			wantStatusCode: http.StatusOK,
			wantMsg:        "user created",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Username: "alice"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
		},
		{
			name:           "validation error - missing username",
			requestBody:    Request{Password: "secret"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Username is a required field",
		},
		{
			name:           "duplicate username",
			requestBody:    Request{Username: "alice", Password: "secret"},
			mockErr:        storage.ErrUserExists,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "user already exists",
		},
		{
			name:           "storage failure",
			requestBody:    Request{Username: "alice", Password: "secret"},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if req, ok := tt.requestBody.(Request); ok && req.Username != "" && req.Password != "" {
				serviceMock.On("Register", mock.Anything, req.Username, req.Password).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var respBody map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respBody))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, respBody["msg"])
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, respBody["error"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestSignupHandler_FirstUserSurvivesDuplicateAttempt(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	serviceMock.On("Register", mock.Anything, "alice", "secret").
		Return("uid-1", nil).Once()
	serviceMock.On("Register", mock.Anything, "alice", "other").
		Return("", storage.ErrUserExists).Once()

	handler := New(newNoopLogger(), serviceMock)

	first := httptest.NewRequest(http.MethodPost, "/signup",
		bytes.NewReader([]byte(`{"username":"alice","password":"secret"}`)))
	firstRec := httptest.NewRecorder()
	handler.ServeHTTP(firstRec, first)
	assert.Equal(t, http.StatusOK, firstRec.Code)

	second := httptest.NewRequest(http.MethodPost, "/signup",
		bytes.NewReader([]byte(`{"username":"alice","password":"other"}`)))
	secondRec := httptest.NewRecorder()
	handler.ServeHTTP(secondRec, second)
	assert.Equal(t, http.StatusUnprocessableEntity, secondRec.Code)

	serviceMock.AssertExpectations(t)
}
