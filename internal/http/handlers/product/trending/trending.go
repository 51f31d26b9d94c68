// Package trending реализует HTTP-обработчик шести самых популярных продуктов.
package trending

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

// Service описывает интерфейс выборки популярных продуктов.
type Service interface {
	Trending(ctx context.Context) ([]*models.Product, error)
}

// Handler обрабатывает запросы на популярные продукты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Популярные продукты
// @Description Возвращает не более шести продуктов, отсортированных по убыванию числа голосов "за".
// @Tags Products
// @Produce  json
// @Success 200 {array} models.Product "Популярные продукты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trending [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.trending"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.Trending(r.Context())
	if err != nil {
		log.Error("failed to load trending products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load trending products"))
		return
	}

	render.JSON(w, r, products)
}
