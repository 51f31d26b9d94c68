package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AlfredGomes23/tech-s-show-hub-server/internal/models"
)

// InsertCoupon сохраняет купон и возвращает его ID.
func (s *Storage) InsertCoupon(ctx context.Context, c models.Coupon) (primitive.ObjectID, error) {
	const op = "storage.mongodb.InsertCoupon"

	res, err := s.coupons.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return id, nil
}

// ListCoupons возвращает все купоны.
func (s *Storage) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	const op = "storage.mongodb.ListCoupons"

	cur, err := s.coupons.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Coupon
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCouponByID возвращает купон по ID.
func (s *Storage) GetCouponByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	const op = "storage.mongodb.GetCouponByID"

	var c models.Coupon
	err := s.coupons.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// UpdateCoupon обновляет поля купона. Пустые значения не затираются.
func (s *Storage) UpdateCoupon(ctx context.Context, id primitive.ObjectID, c models.Coupon) (int64, error) {
	const op = "storage.mongodb.UpdateCoupon"

	set := bson.M{}
	if c.Code != "" {
		set["code"] = c.Code
	}
	if c.Discount != 0 {
		set["discount"] = c.Discount
	}
	if c.Description != "" {
		set["description"] = c.Description
	}
	if !c.Expires.IsZero() {
		set["expires"] = c.Expires
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := s.coupons.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// DeleteCoupon удаляет купон по ID.
func (s *Storage) DeleteCoupon(ctx context.Context, id primitive.ObjectID) (int64, error) {
	const op = "storage.mongodb.DeleteCoupon"

	res, err := s.coupons.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.DeletedCount, nil
}
