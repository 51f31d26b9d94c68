package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// InsertReport сохраняет жалобу на продукт.
func (s *Storage) InsertReport(ctx context.Context, r models.Report) (primitive.ObjectID, error) {
	const op = "storage.mongodb.InsertReport"

	res, err := s.reports.InsertOne(ctx, r)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return id, nil
}

// ListReports возвращает все жалобы, новые первыми.
func (s *Storage) ListReports(ctx context.Context) ([]*models.Report, error) {
	const op = "storage.mongodb.ListReports"

	cur, err := s.reports.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Report
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
