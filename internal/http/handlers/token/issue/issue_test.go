package issue

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMaker реализует интерфейс issue.Maker
type MockMaker struct {
	mock.Mock
}

func (m *MockMaker) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func TestIssueHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockMaker)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный выпуск токена",
			body: `{"email": "member@example.com"}`,
			setupMock: func(m *MockMaker) {
				m.On("GenerateToken", "member@example.com").Return("signed.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"signed.jwt.token"}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email": `,
			setupMock:      func(_ *MockMaker) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "невалидный email",
			body:           `{"email": "not-an-email"}`,
			setupMock:      func(_ *MockMaker) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name: "ошибка подписи токена",
			body: `{"email": "member@example.com"}`,
			setupMock: func(m *MockMaker) {
				m.On("GenerateToken", "member@example.com").Return("", errors.New("sign failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not issue token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMaker := new(MockMaker)
			tt.setupMock(mockMaker)

			handler := New(logger, mockMaker)

			req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockMaker.AssertExpectations(t)
		})
	}
}
