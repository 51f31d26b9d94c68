package vote

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// MockService реализует интерфейс vote.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Vote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error) {
	args := m.Called(ctx, id, kind, email)
	return args.Get(0).(int64), args.Error(1)
}

func TestVoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	id := primitive.NewObjectID()

	tests := []struct {
		name           string
		paramID        string
		query          string
		ctxEmail       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешный голос за продукт",
			paramID: id.Hex(),
			query:   "?email=voter@example.com&vote=upvotes",
			setupMock: func(m *MockService) {
				m.On("Vote", mock.Anything, id, models.VoteUp, "voter@example.com").
					Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"modifiedCount":1}`,
		},
		{
			name:     "email берется из контекста при пустом query",
			paramID:  id.Hex(),
			query:    "?vote=downvotes",
			ctxEmail: "ctx@example.com",
			setupMock: func(m *MockService) {
				m.On("Vote", mock.Anything, id, models.VoteDown, "ctx@example.com").
					Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"modifiedCount":1}`,
		},
		{
			name:           "некорректный id в URL",
			paramID:        "abc",
			query:          "?email=voter@example.com&vote=upvotes",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid product id"}`,
		},
		{
			name:           "неизвестный вид голоса",
			paramID:        id.Hex(),
			query:          "?email=voter@example.com&vote=sideways",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"vote must be upvotes or downvotes"}`,
		},
		{
			name:    "продукт не найден",
			paramID: id.Hex(),
			query:   "?email=voter@example.com&vote=upvotes",
			setupMock: func(m *MockService) {
				m.On("Vote", mock.Anything, id, models.VoteUp, "voter@example.com").
					Return(int64(0), mongodb.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"product not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/product/vote/"+tt.paramID+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.paramID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.ctxEmail != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.ctxEmail)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
