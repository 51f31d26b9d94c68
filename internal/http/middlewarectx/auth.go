// Package middlewarectx содержит HTTP middleware цепочки авторизации.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке
// Authorization и кладет email из claims в контекст запроса.
// RequireRole сверяет текущую роль пользователя из каталога с требуемой.
// Проверки строго последовательны: RequireRole не выполняется,
// если JWTMiddleware уже ответил 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	jwtlib "github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/jwt"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для email пользователя в контексте.
const User Key = "email"

var authDenials = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "hub_auth_denials_total",
	Help: "Authorization gate denials by reason.",
}, []string{"reason"})

// TokenParser описывает разбор и проверку bearer-токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwtlib.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, кладет email из claims в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				authDenials.WithLabelValues("unauthenticated").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				authDenials.WithLabelValues("unauthenticated").Inc()
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
