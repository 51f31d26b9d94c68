// Package coupon содержит бизнес-логику работы с купонами.
// Купоны — плоские записи без кросс-сущностных инвариантов.
package coupon

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// Repository определяет методы работы с купонами в хранилище.
type Repository interface {
	InsertCoupon(ctx context.Context, c models.Coupon) (primitive.ObjectID, error)
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
	GetCouponByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id primitive.ObjectID, c models.Coupon) (int64, error)
	DeleteCoupon(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Service реализует бизнес-логику работы с купонами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет купон и возвращает его ID.
func (s *Service) Create(ctx context.Context, c models.Coupon) (primitive.ObjectID, error) {
	id, err := s.repo.InsertCoupon(ctx, c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.log.Info("created new coupon", slog.String("code", c.Code))
	return id, nil
}

// List возвращает все купоны.
func (s *Service) List(ctx context.Context) ([]*models.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

// Get возвращает купон по ID.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	return s.repo.GetCouponByID(ctx, id)
}

// Update обновляет поля купона.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, c models.Coupon) (int64, error) {
	return s.repo.UpdateCoupon(ctx, id, c)
}

// Delete удаляет купон.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.repo.DeleteCoupon(ctx, id)
}
