package hub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/cache"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/config"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/jwt"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/notifier"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/paymentprovider"
	couponservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/coupon"
	productservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/product"
	reportservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/report"
	statsservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/stats"
	userservice "github.com/AlfredGomes23/tech-s-show-hub-server/internal/services/user"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

// App инкапсулирует жизненный цикл HTTP-сервера и его зависимостей.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
	cache  *cache.Cache
	notify *notifier.Publisher
}

// New собирает приложение из конфига: подключает MongoDB и Redis,
// опционально брокер событий, строит сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.StorageConnectionString, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Пустой URL брокера отключает публикацию событий модерации.
	var publisher *notifier.Publisher
	var notify productservice.Notifier
	if cfg.RabbitMQ.URL != "" {
		publisher, err = notifier.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return nil, err
		}
		notify = publisher
	}

	tokenMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.Stripe.SecretKey)

	users := userservice.New(db, logger)
	products := productservice.New(db, db, db, cacheRedis, notify, logger)
	coupons := couponservice.New(db, logger)
	reports := reportservice.New(db, logger)
	statistics := statsservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, routeDeps{
		tokenMaker: tokenMaker,
		users:      users,
		products:   products,
		coupons:    coupons,
		reports:    reports,
		stats:      statistics,
		provider:   providerClient,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		notify: publisher,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// после чего останавливает сервер и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close(timeoutCtx)
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if err := a.db.Close(ctx); err != nil {
		a.logger.Error("failed to close mongodb client", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis client", sl.Err(err))
	}
	if a.notify != nil {
		if err := a.notify.Close(); err != nil {
			a.logger.Error("failed to close event publisher", sl.Err(err))
		}
	}
}
