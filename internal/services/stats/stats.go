// Package stats собирает агрегированные счетчики для админской панели.
package stats

import (
	"context"
	"log/slog"
)

// Repository определяет счетные запросы к хранилищу.
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
}

// Stats — агрегированные счетчики сервиса.
type Stats struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Reviews  int64 `json:"reviews"`
}

// Service реализует сбор статистики.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Collect последовательно собирает счетчики пользователей, продуктов и отзывов.
func (s *Service) Collect(ctx context.Context) (*Stats, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.CountReviews(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Users: users, Products: products, Reviews: reviews}, nil
}
