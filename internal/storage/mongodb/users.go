package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// UpsertUser сохраняет пользователя по email, если его еще нет.
// Возвращает true, если была создана новая запись.
func (s *Storage) UpsertUser(ctx context.Context, user models.User) (bool, error) {
	const op = "storage.mongodb.UpsertUser"

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": bson.M{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
			"limit": user.Limit,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.UpsertedCount > 0, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongodb.GetUserByEmail"

	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.mongodb.ListUsers"

	cur, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.User
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRoleByID устанавливает роль произвольного пользователя.
func (s *Storage) UpdateUserRoleByID(ctx context.Context, id primitive.ObjectID, role models.Role) (int64, error) {
	const op = "storage.mongodb.UpdateUserRoleByID"

	res, err := s.users.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// UpdateOwnProfile обновляет роль и/или подписку пользователя по его email.
// Пустые значения не затираются.
func (s *Storage) UpdateOwnProfile(ctx context.Context, email string, role models.Role, subscriptionID string) (int64, error) {
	const op = "storage.mongodb.UpdateOwnProfile"

	set := bson.M{}
	if role != "" {
		set["role"] = role
	}
	if subscriptionID != "" {
		set["subscriptionId"] = subscriptionID
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// DecrementLimit атомарно списывает единицу квоты владельца.
// Условие limit > 0 закрывает гонку двух конкурентных публикаций:
// при исчерпанной квоте документ не матчится и возвращается ErrQuotaExceeded.
func (s *Storage) DecrementLimit(ctx context.Context, email string) error {
	const op = "storage.mongodb.DecrementLimit"

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": email, "limit": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"limit": -1}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}
	return nil
}

// IncrementLimit возвращает единицу квоты владельцу после удаления продукта.
func (s *Storage) IncrementLimit(ctx context.Context, email string) error {
	const op = "storage.mongodb.IncrementLimit"

	_, err := s.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$inc": bson.M{"limit": 1}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
