// Package update реализует HTTP-обработчик изменения купона.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// Request — изменяемые поля купона. Нулевые значения не затираются.
type Request struct {
	Code        string    `json:"code"`
	Discount    int       `json:"discount"`
	Description string    `json:"description"`
	Expires     time.Time `json:"expires"`
}

// Service описывает интерфейс обновления купона.
type Service interface {
	Update(ctx context.Context, id primitive.ObjectID, c models.Coupon) (int64, error)
}

// Handler обрабатывает запросы на обновление купона.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить купон
// @Description Обновляет поля купона. Доступно только администратору.
// @Tags Coupons
// @Accept  json
// @Produce  json
// @Param id path string true "ID купона"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} map[string]int64 "Число измененных документов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Купон не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupon/{id} [patch]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.update"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	n, err := h.service.Update(r.Context(), id, models.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
		Expires:     req.Expires,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		log.Info("coupon not found", slog.String("id", id.Hex()))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("coupon not found"))
		return
	}
	if err != nil {
		log.Error("failed to update coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update coupon"))
		return
	}

	log.Info("coupon updated", slog.String("id", id.Hex()))
	render.JSON(w, r, map[string]int64{"modifiedCount": n})
}
