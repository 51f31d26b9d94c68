// Package vote реализует HTTP-обработчик голосования за продукт.
//
// Email голосующего дописывается в выбранный список; повторные
// голоса не подавляются — контракт дедупликацию не предусматривает.
package vote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// Service описывает интерфейс голосования.
type Service interface {
	Vote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error)
}

// Handler обрабатывает запросы на голосование.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Проголосовать за продукт
// @Description Дописывает email голосующего в список upvotes или downvotes. Повторные голоса не подавляются.
// @Tags Products
// @Produce  json
// @Param id path string true "ID продукта"
// @Param email query string true "Email голосующего"
// @Param vote query string true "Вид голоса: upvotes или downvotes"
// @Success 200 {object} map[string]int64 "Число измененных документов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или вид голоса"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /product/vote/{id} [patch]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.vote"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid product id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

	kind, err := models.ParseVoteKind(r.URL.Query().Get("vote"))
	if err != nil {
		log.Error("invalid vote kind", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("vote must be upvotes or downvotes"))
		return
	}

	// Голос записывается от имени email из query, как в исходном
	// контракте; авторизованный email из контекста служит fallback-ом.
	email := r.URL.Query().Get("email")
	if email == "" {
		email, _ = r.Context().Value(middlewarectx.User).(string)
	}
	if email == "" {
		log.Error("voter email is missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	n, err := h.service.Vote(r.Context(), id, kind, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		log.Info("product not found", slog.String("id", id.Hex()))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}
	if err != nil {
		log.Error("failed to vote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not vote"))
		return
	}

	log.Info("vote recorded", slog.String("id", id.Hex()), slog.String("kind", string(kind)))
	render.JSON(w, r, map[string]int64{"modifiedCount": n})
}
