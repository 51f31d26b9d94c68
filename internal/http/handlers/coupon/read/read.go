// Package read реализует HTTP-обработчик выборки купона по ID.
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

// Service описывает интерфейс выборки купона.
type Service interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
}

// Handler обрабатывает запросы на чтение купона.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить купон
// @Description Возвращает купон по его ID.
// @Tags Coupons
// @Produce  json
// @Param id path string true "ID купона"
// @Success 200 {object} models.Coupon "Купон"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Купон не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupon/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid coupon id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid coupon id"))
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		log.Info("coupon not found", slog.String("id", id.Hex()))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("coupon not found"))
		return
	}
	if err != nil {
		log.Error("failed to get coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get coupon"))
		return
	}

	render.JSON(w, r, c)
}
