// Package list реализует HTTP-обработчик листинга продуктов
// с пагинацией и фильтром по подстроке тега.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/response"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// Service описывает интерфейс листинга продуктов.
type Service interface {
	List(ctx context.Context, search string, page, limit int64) ([]*models.Product, error)
}

// Handler обрабатывает запросы на листинг продуктов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список продуктов
// @Description Возвращает страницу продуктов. Непустой search фильтрует по подстроке тега без учета регистра; при нуле совпадений возвращается окно по одобренным продуктам.
// @Tags Products
// @Produce  json
// @Param page query int false "Номер страницы, с нуля"
// @Param limit query int false "Размер страницы, по умолчанию 10"
// @Param search query string false "Подстрока тега"
// @Success 200 {array} models.Product "Страница продуктов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}
	search := r.URL.Query().Get("search")

	products, err := h.service.List(r.Context(), search, page, limit)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list products"))
		return
	}

	log.Info("listed products", slog.Int("count", len(products)), slog.String("search", search))
	render.JSON(w, r, products)
}
