// Package report реализует HTTP-обработчик жалобы на продукт:
// продукт помечается обжалованным, жалоба сохраняется отдельной записью.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// Request — необязательная причина жалобы.
type Request struct {
	Reason string `json:"reason"`
}

// Service описывает интерфейс обработки жалобы.
type Service interface {
	Report(ctx context.Context, id primitive.ObjectID, email, reason string) (int64, error)
}

// Handler обрабатывает жалобы на продукты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пожаловаться на продукт
// @Description Помечает продукт обжалованным и сохраняет жалобу.
// @Tags Products
// @Accept  json
// @Produce  json
// @Param id path string true "ID продукта"
// @Param request body Request false "Причина жалобы"
// @Success 200 {object} map[string]int64 "Число измененных документов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /report/{id} [patch]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.report"
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

	// Тело необязательно: жалоба без причины тоже валидна.
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	n, err := h.service.Report(r.Context(), id, email, req.Reason)
	if errors.Is(err, mongodb.ErrNotFound) {
		log.Info("product not found", slog.String("id", id.Hex()))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}
	if err != nil {
		log.Error("failed to report product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not report product"))
		return
	}

	log.Info("product reported", slog.String("id", id.Hex()), slog.String("email", email))
	render.JSON(w, r, map[string]int64{"modifiedCount": n})
}
