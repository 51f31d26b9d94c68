package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

type directoryMock struct {
	RoleOfFunc func(ctx context.Context, email string) (models.Role, error)
}

func (m *directoryMock) RoleOf(ctx context.Context, email string) (models.Role, error) {
	return m.RoleOfFunc(ctx, email)
}

func TestRequireRole(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		ctxEmail       string
		storedRole     models.Role
		lookupErr      error
		required       models.Role
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "matching role passes",
			ctxEmail:       "admin@example.com",
			storedRole:     models.RoleAdmin,
			required:       models.RoleAdmin,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "role mismatch is forbidden",
			ctxEmail:       "member@example.com",
			storedRole:     models.RoleMember,
			required:       models.RoleAdmin,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "moderator is not admin",
			ctxEmail:       "mod@example.com",
			storedRole:     models.RoleModerator,
			required:       models.RoleAdmin,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "missing email in context",
			ctxEmail:       "",
			required:       models.RoleAdmin,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "directory lookup failure",
			ctxEmail:       "ghost@example.com",
			lookupErr:      assert.AnError,
			required:       models.RoleAdmin,
			wantStatusCode: http.StatusInternalServerError,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			directory := &directoryMock{
				RoleOfFunc: func(ctx context.Context, email string) (models.Role, error) {
					assert.Equal(t, tt.ctxEmail, email)
					return tt.storedRole, tt.lookupErr
				},
			}

			mw := middlewarectx.RequireRole(tt.required, directory, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.ctxEmail != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.ctxEmail))
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
