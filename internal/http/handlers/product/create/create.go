// Package create реализует HTTP-обработчик публикации продукта.
//
// Публикация списывает единицу квоты владельца; при исчерпанной
// квоте продукт не вставляется и возвращается 409.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/product"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// Request — данные нового продукта.
type Request struct {
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags"`
}

// Service описывает интерфейс бизнес-логики публикации продукта.
type Service interface {
	Create(ctx context.Context, ownerEmail string, req product.CreateRequest) (primitive.ObjectID, error)
}

// Handler обрабатывает запросы на публикацию продуктов.
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
// @Summary Опубликовать продукт
// @Description Создает продукт со статусом Pending и списывает единицу квоты владельца.
// @Tags Products
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные продукта"
// @Success 200 {object} map[string]string "ID созданного продукта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Квота исчерпана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /product [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"
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

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), email, product.CreateRequest{
		Name: req.Name,
		Tags: req.Tags,
	})
	if errors.Is(err, mongodb.ErrQuotaExceeded) {
		log.Info("product limit exceeded", slog.String("owner", email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("product limit exceeded"))
		return
	}
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create product"))
		return
	}

	log.Info("product created", slog.String("id", id.Hex()), slog.String("owner", email))
	render.JSON(w, r, map[string]string{"insertedId": id.Hex()})
}
