// Package intent реализует HTTP-обработчик создания платежного намерения.
// Сумма приходит в минимальных единицах валюты, валюта берется из конфига.
package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/paymentprovider"
)

// Request содержит сумму платежа в минимальных единицах валюты.
type Request struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Provider описывает интерфейс платежного провайдера.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req paymentprovider.CreateIntentRequest) (*paymentprovider.PaymentIntent, error)
}

// Handler обрабатывает запросы на создание платежного намерения.
type Handler struct {
	log      *slog.Logger
	provider Provider
	currency string
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, provider Provider, currency string) *Handler {
	return &Handler{
		log:      log,
		provider: provider,
		currency: currency,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платежное намерение
// @Description Создает payment intent у провайдера и возвращает client secret для подтверждения платежа на клиенте.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Сумма в минимальных единицах валюты"
// @Success 200 {object} paymentprovider.PaymentIntent "Созданное платежное намерение"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Router /payment-intent [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"
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

	intent, err := h.provider.CreatePaymentIntent(r.Context(), paymentprovider.CreateIntentRequest{
		Amount:   req.Amount,
		Currency: h.currency,
	})
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not create payment intent"))
		return
	}

	log.Info("payment intent created", slog.String("intent_id", intent.ID))
	render.JSON(w, r, intent)
}
