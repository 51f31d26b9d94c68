package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// RoleDirectory описывает каталог идентичностей для проверки ролей.
type RoleDirectory interface {
	// RoleOf возвращает текущую роль пользователя, свежий запрос на каждый вызов.
	RoleOf(ctx context.Context, email string) (models.Role, error)
}

// RequireRole возвращает middleware, пропускающий запрос только при
// точном совпадении сохраненной роли пользователя с required.
//
// Роль не кешируется и не берется из токена: каждый запрос — свежий
// запрос к каталогу, поэтому смена роли действует немедленно.
// Несовпадение — 403 Forbidden; отсутствие email в контексте — 401.
func RequireRole(required models.Role, directory RoleDirectory, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			email, ok := r.Context().Value(User).(string)
			if !ok || email == "" {
				log.Error("email not found in context")
				authDenials.WithLabelValues("unauthenticated").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			role, err := directory.RoleOf(r.Context(), email)
			if err != nil {
				log.Error("failed to look up user role", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if role != required {
				log.Error("role mismatch",
					slog.String("required", string(required)),
					slog.String("actual", string(role)))
				authDenials.WithLabelValues("forbidden").Inc()
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
