package product

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/notifier"
	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/storage/mongodb"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) InsertProduct(ctx context.Context, p models.Product) (primitive.ObjectID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}
func (m *RepoMock) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *RepoMock) CountByTag(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListByTag(ctx context.Context, search string, page, limit int64) ([]*models.Product, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}
func (m *RepoMock) ListAccepted(ctx context.Context, page, limit int64) ([]*models.Product, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}
func (m *RepoMock) TrendingProducts(ctx context.Context, n int64) ([]*models.Product, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}
func (m *RepoMock) UpdateProductFields(ctx context.Context, id primitive.ObjectID, name string, tags []string, status models.ProductStatus) (int64, error) {
	args := m.Called(ctx, id, name, tags, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) AppendVote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error) {
	args := m.Called(ctx, id, kind, email)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) SetReported(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) AppendReview(ctx context.Context, id primitive.ObjectID, review models.Review) (int64, error) {
	args := m.Called(ctx, id, review)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type QuotaMock struct{ mock.Mock }

func (m *QuotaMock) DecrementLimit(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *QuotaMock) IncrementLimit(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) InsertReport(ctx context.Context, r models.Report) (primitive.ObjectID, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) Publish(event notifier.Event) error {
	return m.Called(event).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo *RepoMock, quota *QuotaMock, reports *ReportRepoMock, cache *CacheMock, notify Notifier) *Service {
	return New(repo, quota, reports, cache, notify, newNoopLogger())
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("successful create charges one quota unit", func(t *testing.T) {
		repo := new(RepoMock)
		quota := new(QuotaMock)
		quota.On("DecrementLimit", mock.Anything, "owner@example.com").Return(nil)
		repo.On("InsertProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
			return p.OwnerEmail == "owner@example.com" &&
				p.Status == models.StatusPending &&
				len(p.Upvotes) == 0 && len(p.Downvotes) == 0 && len(p.Reviews) == 0
		})).Return(id, nil)

		svc := newService(repo, quota, new(ReportRepoMock), new(CacheMock), nil)
		got, err := svc.Create(ctx, "owner@example.com", CreateRequest{Name: "Widget", Tags: []string{"tools"}})

		assert.NoError(t, err)
		assert.Equal(t, id, got)
		repo.AssertExpectations(t)
		quota.AssertExpectations(t)
	})

	t.Run("exhausted quota blocks insert", func(t *testing.T) {
		repo := new(RepoMock)
		quota := new(QuotaMock)
		quota.On("DecrementLimit", mock.Anything, "owner@example.com").Return(mongodb.ErrQuotaExceeded)

		svc := newService(repo, quota, new(ReportRepoMock), new(CacheMock), nil)
		_, err := svc.Create(ctx, "owner@example.com", CreateRequest{Name: "Widget"})

		assert.ErrorIs(t, err, mongodb.ErrQuotaExceeded)
		repo.AssertNotCalled(t, "InsertProduct", mock.Anything, mock.Anything)
	})

	t.Run("insert failure refunds quota", func(t *testing.T) {
		repo := new(RepoMock)
		quota := new(QuotaMock)
		quota.On("DecrementLimit", mock.Anything, "owner@example.com").Return(nil)
		repo.On("InsertProduct", mock.Anything, mock.Anything).
			Return(primitive.NilObjectID, errors.New("write failed"))
		quota.On("IncrementLimit", mock.Anything, "owner@example.com").Return(nil)

		svc := newService(repo, quota, new(ReportRepoMock), new(CacheMock), nil)
		_, err := svc.Create(ctx, "owner@example.com", CreateRequest{Name: "Widget"})

		assert.Error(t, err)
		quota.AssertExpectations(t)
	})
}

func TestService_Read(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	key := "product:" + id.Hex()

	t.Run("cache miss falls back to storage and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil)
		repo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id, Name: "Widget"}, nil)
		cache.On("Set", mock.Anything, key, mock.Anything, time.Hour).Return(nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), cache, nil)
		p, err := svc.Read(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "Widget", p.Name)
		cache.AssertExpectations(t)
	})

	t.Run("missing product returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil)
		repo.On("GetProductByID", mock.Anything, id).Return(nil, mongodb.ErrNotFound)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), cache, nil)
		_, err := svc.Read(ctx, id)

		assert.ErrorIs(t, err, mongodb.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	matched := []*models.Product{{Name: "AI Tool"}}
	accepted := []*models.Product{{Name: "Accepted Tool"}}

	t.Run("search with matches uses tag filter", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CountByTag", mock.Anything, "ai").Return(int64(1), nil)
		repo.On("ListByTag", mock.Anything, "ai", int64(0), int64(10)).Return(matched, nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), new(CacheMock), nil)
		got, err := svc.List(ctx, "ai", 0, 10)

		assert.NoError(t, err)
		assert.Equal(t, matched, got)
		repo.AssertNotCalled(t, "ListAccepted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("search without matches falls back to accepted window", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CountByTag", mock.Anything, "nomatch").Return(int64(0), nil)
		repo.On("ListAccepted", mock.Anything, int64(2), int64(5)).Return(accepted, nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), new(CacheMock), nil)
		got, err := svc.List(ctx, "nomatch", 2, 5)

		assert.NoError(t, err)
		assert.Equal(t, accepted, got)
	})

	t.Run("empty search lists accepted with default page size", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListAccepted", mock.Anything, int64(0), int64(DefaultPageSize)).Return(accepted, nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), new(CacheMock), nil)
		got, err := svc.List(ctx, "", -1, 0)

		assert.NoError(t, err)
		assert.Equal(t, accepted, got)
		repo.AssertNotCalled(t, "CountByTag", mock.Anything, mock.Anything)
	})
}

func TestService_Vote(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	key := "product:" + id.Hex()

	repo := new(RepoMock)
	cache := new(CacheMock)
	// Repeated votes append again, no dedup.
	repo.On("AppendVote", mock.Anything, id, models.VoteUp, "voter@example.com").Return(int64(1), nil).Twice()
	cache.On("Invalidate", mock.Anything, key).Return(nil).Twice()

	svc := newService(repo, new(QuotaMock), new(ReportRepoMock), cache, nil)

	n, err := svc.Vote(ctx, id, models.VoteUp, "voter@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.Vote(ctx, id, models.VoteUp, "voter@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	key := "product:" + id.Hex()

	t.Run("marks product and stores report", func(t *testing.T) {
		repo := new(RepoMock)
		reports := new(ReportRepoMock)
		cache := new(CacheMock)
		notify := new(NotifierMock)
		repo.On("SetReported", mock.Anything, id).Return(int64(1), nil)
		reports.On("InsertReport", mock.Anything, mock.MatchedBy(func(r models.Report) bool {
			return r.ProductID == id && r.Email == "user@example.com" && r.Reason == "spam"
		})).Return(primitive.NewObjectID(), nil)
		cache.On("Invalidate", mock.Anything, key).Return(nil)
		notify.On("Publish", mock.MatchedBy(func(e notifier.Event) bool {
			return e.Kind == notifier.EventProductReported && e.ProductID == id.Hex()
		})).Return(nil)

		svc := newService(repo, new(QuotaMock), reports, cache, notify)
		n, err := svc.Report(ctx, id, "user@example.com", "spam")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
		reports.AssertExpectations(t)
		notify.AssertExpectations(t)
	})

	t.Run("report record failure does not fail the call", func(t *testing.T) {
		repo := new(RepoMock)
		reports := new(ReportRepoMock)
		cache := new(CacheMock)
		repo.On("SetReported", mock.Anything, id).Return(int64(1), nil)
		reports.On("InsertReport", mock.Anything, mock.Anything).
			Return(primitive.NilObjectID, errors.New("write failed"))
		cache.On("Invalidate", mock.Anything, key).Return(nil)

		svc := newService(repo, new(QuotaMock), reports, cache, nil)
		n, err := svc.Report(ctx, id, "user@example.com", "")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	key := "product:" + id.Hex()

	t.Run("status change publishes moderation event", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		notify := new(NotifierMock)
		repo.On("UpdateProductFields", mock.Anything, id, "", []string(nil), models.StatusAccepted).Return(int64(1), nil)
		cache.On("Invalidate", mock.Anything, key).Return(nil)
		notify.On("Publish", mock.MatchedBy(func(e notifier.Event) bool {
			return e.Kind == notifier.EventStatusChanged && e.Status == string(models.StatusAccepted)
		})).Return(nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), cache, notify)
		n, err := svc.Update(ctx, id, UpdateRequest{Status: models.StatusAccepted})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
		notify.AssertExpectations(t)
	})

	t.Run("rename without status change publishes nothing", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		notify := new(NotifierMock)
		repo.On("UpdateProductFields", mock.Anything, id, "New Name", []string(nil), models.ProductStatus("")).Return(int64(1), nil)
		cache.On("Invalidate", mock.Anything, key).Return(nil)

		svc := newService(repo, new(QuotaMock), new(ReportRepoMock), cache, notify)
		_, err := svc.Update(ctx, id, UpdateRequest{Name: "New Name"})

		assert.NoError(t, err)
		notify.AssertNotCalled(t, "Publish", mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	key := "product:" + id.Hex()

	t.Run("delete refunds owner quota", func(t *testing.T) {
		repo := new(RepoMock)
		quota := new(QuotaMock)
		cache := new(CacheMock)
		repo.On("DeleteProduct", mock.Anything, id).
			Return(&models.Product{ID: id, OwnerEmail: "owner@example.com"}, nil)
		quota.On("IncrementLimit", mock.Anything, "owner@example.com").Return(nil)
		cache.On("Invalidate", mock.Anything, key).Return(nil)

		svc := newService(repo, quota, new(ReportRepoMock), cache, nil)
		p, err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "owner@example.com", p.OwnerEmail)
		quota.AssertExpectations(t)
	})

	t.Run("missing product refunds nothing", func(t *testing.T) {
		repo := new(RepoMock)
		quota := new(QuotaMock)
		repo.On("DeleteProduct", mock.Anything, id).Return(nil, mongodb.ErrNotFound)

		svc := newService(repo, quota, new(ReportRepoMock), new(CacheMock), nil)
		_, err := svc.Delete(ctx, id)

		assert.ErrorIs(t, err, mongodb.ErrNotFound)
		quota.AssertNotCalled(t, "IncrementLimit", mock.Anything, mock.Anything)
	})
}

func TestService_Trending(t *testing.T) {
	repo := new(RepoMock)
	top := []*models.Product{{Name: "Top Tool"}}
	repo.On("TrendingProducts", mock.Anything, int64(TrendingSize)).Return(top, nil)

	svc := newService(repo, new(QuotaMock), new(ReportRepoMock), new(CacheMock), nil)
	got, err := svc.Trending(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, top, got)
	repo.AssertExpectations(t)
}
