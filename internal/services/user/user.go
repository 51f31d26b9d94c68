// Package user содержит бизнес-логику работы с пользователями
// и выполняет роль каталога идентичностей для проверки ролей.
package user

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// Repository определяет методы работы с пользователями в хранилище.
type Repository interface {
	// UpsertUser сохраняет пользователя по email, если его еще нет.
	UpsertUser(ctx context.Context, user models.User) (bool, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUserRoleByID устанавливает роль произвольного пользователя.
	UpdateUserRoleByID(ctx context.Context, id primitive.ObjectID, role models.Role) (int64, error)
	// UpdateOwnProfile обновляет роль и/или подписку пользователя по email.
	UpdateOwnProfile(ctx context.Context, email string, role models.Role, subscriptionID string) (int64, error)
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register регистрирует пользователя с ролью Member и стартовой квотой.
// Повторная регистрация того же email — no-op: существующая запись не затирается.
// Возвращает true, если запись была создана.
func (s *Service) Register(ctx context.Context, email, name string) (bool, error) {
	created, err := s.repo.UpsertUser(ctx, models.User{
		Email: email,
		Name:  name,
		Role:  models.RoleMember,
		Limit: models.DefaultProductLimit,
	})
	if err != nil {
		return false, err
	}
	if created {
		s.log.Info("registered new user", slog.String("email", email))
	}
	return created, nil
}

// Get возвращает пользователя по email.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateSelf обновляет роль и/или подписку самого пользователя.
func (s *Service) UpdateSelf(ctx context.Context, email string, role models.Role, subscriptionID string) (int64, error) {
	return s.repo.UpdateOwnProfile(ctx, email, role, subscriptionID)
}

// UpdateRole устанавливает роль произвольного пользователя (админская операция).
func (s *Service) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (int64, error) {
	n, err := s.repo.UpdateUserRoleByID(ctx, id, role)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated user role", slog.String("id", id.Hex()), slog.String("role", string(role)))
	return n, nil
}

// RoleOf возвращает текущую роль пользователя.
// Каждый вызов — свежий запрос к хранилищу: смена роли действует
// со следующего запроса, уже выпущенные токены перечитываются.
func (s *Service) RoleOf(ctx context.Context, email string) (models.Role, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}
