// Package read реализует HTTP-обработчик чтения продукта по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// Service описывает интерфейс чтения продукта.
type Service interface {
	Read(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// Handler обрабатывает запросы на чтение продукта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить продукт
// @Description Возвращает продукт по ID.
// @Tags Products
// @Produce  json
// @Param id path string true "ID продукта"
// @Success 200 {object} models.Product "Документ продукта"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /product/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"
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

	p, err := h.service.Read(r.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		log.Info("product not found", slog.String("id", id.Hex()))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}
	if err != nil {
		log.Error("failed to read product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read product"))
		return
	}

	render.JSON(w, r, p)
}
