// Package product содержит бизнес-логику работы с продуктами:
// публикацию с учетом квоты владельца, листинг с фильтром по тегам,
// голосование, отзывы, жалобы и удаление с возвратом квоты.
package product

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/lib/sl"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/notifier"
)

// TrendingSize — размер выдачи /trending.
const TrendingSize = 6

// DefaultPageSize — размер страницы листинга по умолчанию.
const DefaultPageSize = 10

// Repository определяет методы работы с продуктами в хранилище.
type Repository interface {
	InsertProduct(ctx context.Context, p models.Product) (primitive.ObjectID, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	CountByTag(ctx context.Context, search string) (int64, error)
	ListByTag(ctx context.Context, search string, page, limit int64) ([]*models.Product, error)
	ListAccepted(ctx context.Context, page, limit int64) ([]*models.Product, error)
	TrendingProducts(ctx context.Context, n int64) ([]*models.Product, error)
	UpdateProductFields(ctx context.Context, id primitive.ObjectID, name string, tags []string, status models.ProductStatus) (int64, error)
	AppendVote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error)
	SetReported(ctx context.Context, id primitive.ObjectID) (int64, error)
	AppendReview(ctx context.Context, id primitive.ObjectID, review models.Review) (int64, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// UserQuota определяет операции над квотой владельца продукта.
type UserQuota interface {
	// DecrementLimit атомарно списывает единицу квоты, ErrQuotaExceeded при нуле.
	DecrementLimit(ctx context.Context, email string) error
	// IncrementLimit возвращает единицу квоты.
	IncrementLimit(ctx context.Context, email string) error
}

// ReportRepository сохраняет жалобы на продукты.
type ReportRepository interface {
	InsertReport(ctx context.Context, r models.Report) (primitive.ObjectID, error)
}

// Cache описывает методы кеширования документов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Notifier публикует события модерации. Может быть nil — тогда отключен.
type Notifier interface {
	Publish(event notifier.Event) error
}

// Service реализует бизнес-логику работы с продуктами.
type Service struct {
	repo    Repository
	quota   UserQuota
	reports ReportRepository
	cache   Cache
	notify  Notifier
	log     *slog.Logger
}

// New создает новый экземпляр Service. notify может быть nil.
func New(repo Repository, quota UserQuota, reports ReportRepository, cache Cache, notify Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		quota:   quota,
		reports: reports,
		cache:   cache,
		notify:  notify,
		log:     log,
	}
}

// CreateRequest — данные нового продукта.
type CreateRequest struct {
	Name string
	Tags []string
}

// Create публикует продукт от имени ownerEmail.
//
// Сначала условным обновлением списывается квота владельца; при
// исчерпанной квоте продукт не вставляется. Если вставка после
// успешного списания не удалась, квота возвращается компенсирующим
// инкрементом.
func (s *Service) Create(ctx context.Context, ownerEmail string, req CreateRequest) (primitive.ObjectID, error) {
	if err := s.quota.DecrementLimit(ctx, ownerEmail); err != nil {
		return primitive.NilObjectID, err
	}

	p := models.Product{
		Name:       req.Name,
		Tags:       req.Tags,
		Status:     models.StatusPending,
		OwnerEmail: ownerEmail,
		Upvotes:    []string{},
		Downvotes:  []string{},
		Reviews:    []models.Review{},
		Reported:   false,
		Posted:     time.Now().UTC(),
	}
	id, err := s.repo.InsertProduct(ctx, p)
	if err != nil {
		if incErr := s.quota.IncrementLimit(ctx, ownerEmail); incErr != nil {
			s.log.Warn("failed to refund limit after insert failure", sl.Err(incErr))
		}
		return primitive.NilObjectID, err
	}

	s.log.Info("created new product", slog.String("id", id.Hex()), slog.String("owner", ownerEmail))
	return id, nil
}

// Read возвращает продукт по ID, используя кеш или хранилище.
func (s *Service) Read(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var result *models.Product
	cacheKey := productKey(id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает страницу продуктов.
//
// Непустой search фильтрует по подстроке тега без учета регистра;
// при нуле совпадений (и при пустом search) возвращается то же окно
// по всем продуктам со статусом Accepted.
func (s *Service) List(ctx context.Context, search string, page, limit int64) ([]*models.Product, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	if search != "" {
		n, err := s.repo.CountByTag(ctx, search)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return s.repo.ListByTag(ctx, search, page, limit)
		}
	}
	return s.repo.ListAccepted(ctx, page, limit)
}

// Trending возвращает шесть продуктов с наибольшим числом голосов "за".
func (s *Service) Trending(ctx context.Context) ([]*models.Product, error) {
	return s.repo.TrendingProducts(ctx, TrendingSize)
}

// UpdateRequest — изменяемые поля продукта. Пустые значения не затираются.
type UpdateRequest struct {
	Name   string
	Tags   []string
	Status models.ProductStatus
}

// Update обновляет поля продукта и инвалидирует кеш.
// Смена статуса публикуется как событие модерации.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, req UpdateRequest) (int64, error) {
	n, err := s.repo.UpdateProductFields(ctx, id, req.Name, req.Tags, req.Status)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)

	if req.Status != "" {
		s.publish(notifier.Event{
			Kind:      notifier.EventStatusChanged,
			ProductID: id.Hex(),
			Status:    string(req.Status),
			At:        time.Now().UTC(),
		})
	}
	return n, nil
}

// Vote дописывает email голосующего в выбранный список голосов.
// Повторный голос того же email добавляется еще раз: дедупликация
// контрактом не предусмотрена.
func (s *Service) Vote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error) {
	n, err := s.repo.AppendVote(ctx, id, kind, email)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return n, nil
}

// Report помечает продукт обжалованным, сохраняет жалобу и публикует событие.
func (s *Service) Report(ctx context.Context, id primitive.ObjectID, email, reason string) (int64, error) {
	n, err := s.repo.SetReported(ctx, id)
	if err != nil {
		return 0, err
	}

	if _, err := s.reports.InsertReport(ctx, models.Report{
		ProductID: id,
		Email:     email,
		Reason:    reason,
		Created:   time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to store report record", sl.Err(err))
	}

	s.invalidate(ctx, id)
	s.publish(notifier.Event{
		Kind:      notifier.EventProductReported,
		ProductID: id.Hex(),
		Email:     email,
		At:        time.Now().UTC(),
	})
	return n, nil
}

// AddReview дописывает отзыв в продукт и инвалидирует кеш.
func (s *Service) AddReview(ctx context.Context, id primitive.ObjectID, review models.Review) (int64, error) {
	n, err := s.repo.AppendReview(ctx, id, review)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return n, nil
}

// Delete удаляет продукт и возвращает единицу квоты владельцу.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.quota.IncrementLimit(ctx, p.OwnerEmail); err != nil {
		s.log.Warn("failed to refund limit after delete", slog.String("owner", p.OwnerEmail), sl.Err(err))
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *Service) invalidate(ctx context.Context, id primitive.ObjectID) {
	cacheKey := productKey(id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func (s *Service) publish(event notifier.Event) {
	if s.notify == nil {
		return
	}
	if err := s.notify.Publish(event); err != nil {
		s.log.Warn("failed to publish moderation event", slog.String("kind", event.Kind), sl.Err(err))
	}
}

func productKey(id primitive.ObjectID) string {
	return fmt.Sprintf("product:%s", id.Hex())
}
