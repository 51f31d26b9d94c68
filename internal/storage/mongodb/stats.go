package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CountUsers возвращает общее число пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	const op = "storage.mongodb.CountUsers"

	n, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountProducts возвращает общее число продуктов.
func (s *Storage) CountProducts(ctx context.Context) (int64, error) {
	const op = "storage.mongodb.CountProducts"

	n, err := s.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountReviews суммирует размеры массивов reviews по всем продуктам.
func (s *Storage) CountReviews(ctx context.Context) (int64, error) {
	const op = "storage.mongodb.CountReviews"

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"reviews": bson.M{"$sum": bson.M{"$size": "$reviews"}},
		}}},
	}
	cur, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	var rows []struct {
		Reviews int64 `bson:"reviews"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Reviews, nil
}
