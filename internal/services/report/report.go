// Package report отдает сохраненные жалобы модераторам.
package report

import (
	"context"
	"log/slog"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// Repository определяет методы чтения жалоб из хранилища.
type Repository interface {
	ListReports(ctx context.Context) ([]*models.Report, error)
}

// Service реализует выдачу жалоб.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает все жалобы, новые первыми.
func (s *Service) List(ctx context.Context) ([]*models.Report, error) {
	return s.repo.ListReports(ctx)
}
