// Package list реализует HTTP-обработчик выборки всех купонов.
package list

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

// Service описывает интерфейс выборки купонов.
type Service interface {
	List(ctx context.Context) ([]*models.Coupon, error)
}

// Handler обрабатывает запросы на список купонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список купонов
// @Description Возвращает все купоны. Доступно без авторизации.
// @Tags Coupons
// @Produce  json
// @Success 200 {array} models.Coupon "Купоны"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coupons, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list coupons"))
		return
	}

	render.JSON(w, r, coupons)
}
