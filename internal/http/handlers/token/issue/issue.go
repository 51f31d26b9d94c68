// Package issue реализует HTTP-обработчик выпуска bearer-токена.
//
// Обработчик не проверяет учетные данные: доверие к email вынесено
// на сторону, уже аутентифицировавшую вызывающего. Токен живет
// фиксированный срок и отзыву не подлежит.
package issue

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
)

// Request — идентификационный payload вызывающего.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Maker описывает выпуск подписанного токена.
type Maker interface {
	GenerateToken(email string) (string, error)
}

// Handler обрабатывает запросы на выпуск токена.
type Handler struct {
	log      *slog.Logger
	maker    Maker
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, maker Maker) *Handler {
	return &Handler{
		log:      log,
		maker:    maker,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выпустить токен
// @Description Выпускает bearer-токен со сроком жизни один час для переданного email.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификационный payload"
// @Success 200 {object} map[string]string "Выпущенный токен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка подписи токена"
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.token.issue"
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

	token, err := h.maker.GenerateToken(req.Email)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	log.Info("issued token", slog.String("email", req.Email))
	render.JSON(w, r, map[string]string{"token": token})
}
