package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/steake/internal/domain"
	"github.com/GlebRadaev/steake/internal/service/authservice"
	"github.com/GlebRadaev/steake/pkg/auth"
	"github.com/GlebRadaev/steake/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

var (
	birthDate = time.Date(1990, time.April, 21, 0, 0, 0, 0, time.UTC)
	expiresAt = time.Now().Add(time.Hour)
	newUser   = &domain.User{ID: 1, Login: "newuser", Email: "new@example.com", PasswordHash: "hashedpassword"}
)

const registerBody = `{"login":"newuser","email":"new@example.com","password":"password123","birthDate":"1990-04-21"}`

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: registerBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "newuser", "new@example.com", "password123", birthDate).Return(newUser, nil)
				service.EXPECT().GenerateToken(newUser).Return("some-jwt-token", expiresAt, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User already exists",
			body: registerBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "newuser", "new@example.com", "password123", birthDate).
					Return(nil, authservice.ErrLoginTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "username already taken",
		},
		{
			name: "Underage",
			body: registerBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "newuser", "new@example.com", "password123", birthDate).
					Return(nil, authservice.ErrUnderage)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: authservice.ErrUnderage.Error(),
		},
		{
			name: "Repository failure",
			body: registerBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "newuser", "new@example.com", "password123", birthDate).
					Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Invalid birth date",
			body:          `{"login":"newuser","email":"new@example.com","password":"password123","birthDate":"21.04.1990"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "birthDate must be YYYY-MM-DD",
		},
		{
			name: "Error generating token",
			body: registerBody,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "newuser", "new@example.com", "password123", birthDate).Return(newUser, nil)
				service.EXPECT().GenerateToken(newUser).Return("", time.Time{}, errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
			assert.Contains(t, rr.Header().Get("Set-Cookie"), auth.CookieName+"=some-jwt-token")
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)
	user := &domain.User{ID: 1, Login: "testuser", PasswordHash: "hashedpassword"}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"login":"testuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "password123").
					Return(user, nil)

				service.EXPECT().
					GenerateToken(user).
					Return("some-jwt-token", expiresAt, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"login":"testuser","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "wrongpassword").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"login":"testuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "password123").
					Return(user, nil)

				service.EXPECT().
					GenerateToken(user).
					Return("", time.Time{}, errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	handler, _ := NewMock(t)

	rr := httptest.NewRecorder()
	handler.Logout(rr, httptest.NewRequest("POST", "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestSessionHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Known user",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), 1).Return(newUser, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Deleted user",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), 1).Return(nil, authservice.ErrUserNotFound)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Lookup failure",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), 1).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/auth/session", nil)
			req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 1, Login: "newuser"}))
			rr := httptest.NewRecorder()

			handler.Session(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
