// Package hub предоставляет маршруты для основного приложения.
package hub

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	couponcreate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/coupon/create"
	couponlist "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/coupon/list"
	couponread "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/coupon/read"
	couponremove "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/coupon/remove"
	couponupdate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/coupon/update"
	paymentintent "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/payment/intent"
	productcreate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/create"
	productlist "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/list"
	productread "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/read"
	productremove "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/remove"
	productreport "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/report"
	producttrending "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/trending"
	productupdate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/update"
	productvote "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/product/vote"
	reportlist "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/report/list"
	reviewcreate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/review/create"
	statsadmin "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/stats/admin"
	tokenissue "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/token/issue"
	usercreate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/user/create"
	userlist "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/user/list"
	userread "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/user/read"
	userupdate "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/user/update"
	userupdaterole "github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/handlers/user/updaterole"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/http/middlewarectx"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/jwt"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/paymentprovider"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/config"
	couponservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/coupon"
	productservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/product"
	reportservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/report"
	statsservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/stats"
	userservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/user"
)

// routeDeps собирает зависимости маршрутов в один аргумент.
type routeDeps struct {
	tokenMaker jwt.Maker
	users      *userservice.Service
	products   *productservice.Service
	coupons    *couponservice.Service
	reports    *reportservice.Service
	stats      *statsservice.Service
	provider   *paymentprovider.Client
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, deps routeDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Liveness-проба
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "Tech's Show Hub server is running"})
	})

	limiter := rate.NewLimiter(rate.Limit(20), 40)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/jwt", tokenissue.New(logger, deps.tokenMaker).ServeHTTP)
		r.Get("/user", userread.New(logger, deps.users).ServeHTTP)
		r.Get("/products", productlist.New(logger, deps.products).ServeHTTP)
		r.Get("/trending", producttrending.New(logger, deps.products).ServeHTTP)
		r.Get("/product/{id}", productread.New(logger, deps.products).ServeHTTP)
		r.Get("/coupons", couponlist.New(logger, deps.coupons).ServeHTTP)
		r.Get("/coupon/{id}", couponread.New(logger, deps.coupons).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.tokenMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Post("/user", usercreate.New(logger, deps.users).ServeHTTP)
			r.Patch("/user", userupdate.New(logger, deps.users).ServeHTTP)
			r.Post("/product", productcreate.New(logger, deps.products).ServeHTTP)
			r.Patch("/product/update/{id}", productupdate.New(logger, deps.products).ServeHTTP)
			r.Patch("/product/vote/{id}", productvote.New(logger, deps.products).ServeHTTP)
			r.Patch("/report/{id}", productreport.New(logger, deps.products).ServeHTTP)
			r.Delete("/product/{id}", productremove.New(logger, deps.products).ServeHTTP)
			r.Post("/review/{id}", reviewcreate.New(logger, deps.products).ServeHTTP)
			r.Post("/payment-intent", paymentintent.New(logger, deps.provider, cfg.Stripe.Currency).ServeHTTP)

			// Конечные точки модератора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleModerator, deps.users, logger))
				r.Get("/reports", reportlist.New(logger, deps.reports).ServeHTTP)
			})

			// Конечные точки администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, deps.users, logger))
				r.Get("/users", userlist.New(logger, deps.users).ServeHTTP)
				r.Patch("/user/{id}", userupdaterole.New(logger, deps.users).ServeHTTP)
				r.Post("/coupon", couponcreate.New(logger, deps.coupons).ServeHTTP)
				r.Patch("/coupon/{id}", couponupdate.New(logger, deps.coupons).ServeHTTP)
				r.Delete("/coupon/{id}", couponremove.New(logger, deps.coupons).ServeHTTP)
				r.Get("/admin-stats", statsadmin.New(logger, deps.stats).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
