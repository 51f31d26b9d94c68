package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/product"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerEmail string, req product.CreateRequest) (primitive.ObjectID, error) {
	args := m.Called(ctx, ownerEmail, req)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	id := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешная публикация продукта",
			body:  `{"name": "AI Widget", "tags": ["ai", "tools"]}`,
			email: "owner@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "owner@example.com",
					product.CreateRequest{Name: "AI Widget", Tags: []string{"ai", "tools"}}).
					Return(id, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"insertedId":"` + id.Hex() + `"}`,
		},
		{
			name:  "исчерпанная квота",
			body:  `{"name": "One Too Many"}`,
			email: "owner@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "owner@example.com", mock.Anything).
					Return(primitive.NilObjectID, mongodb.ErrQuotaExceeded)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"product limit exceeded"}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"name": `,
			email:          "owner@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует обязательное имя",
			body:           `{"tags": ["ai"]}`,
			email:          "owner@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
		{
			name:           "email отсутствует в контексте",
			body:           `{"name": "AI Widget"}`,
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:  "ошибка сервиса",
			body:  `{"name": "AI Widget"}`,
			email: "owner@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "owner@example.com", mock.Anything).
					Return(primitive.NilObjectID, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader(tt.body))
			if tt.email != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.email))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
