// Package create реализует HTTP-обработчик создания купона.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// Request содержит данные нового купона.
type Request struct {
	Code        string    `json:"code" validate:"required"`
	Discount    int       `json:"discount" validate:"required,gt=0"`
	Description string    `json:"description"`
	Expires     time.Time `json:"expires"`
}

// Service описывает интерфейс создания купона.
type Service interface {
	Create(ctx context.Context, c models.Coupon) (primitive.ObjectID, error)
}

// Handler обрабатывает запросы на создание купона.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать купон
// @Description Создает купон. Доступно только администратору.
// @Tags Coupons
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные купона"
// @Success 200 {object} map[string]string "ID созданного купона"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupon [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), models.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
		Expires:     req.Expires,
	})
	if err != nil {
		log.Error("failed to create coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create coupon"))
		return
	}

	log.Info("coupon created", slog.String("code", req.Code))
	render.JSON(w, r, map[string]string{"insertedId": id.Hex()})
}
