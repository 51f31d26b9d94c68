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

// InsertProduct сохраняет новый продукт и возвращает его ID.
func (s *Storage) InsertProduct(ctx context.Context, p models.Product) (primitive.ObjectID, error) {
	const op = "storage.mongodb.InsertProduct"

	res, err := s.products.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return id, nil
}

// GetProductByID возвращает продукт по ID.
func (s *Storage) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	const op = "storage.mongodb.GetProductByID"

	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// CountByTag возвращает число продуктов, у которых хотя бы один тег
// содержит подстроку search без учета регистра.
func (s *Storage) CountByTag(ctx context.Context, search string) (int64, error) {
	const op = "storage.mongodb.CountByTag"

	n, err := s.products.CountDocuments(ctx, tagFilter(search))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListByTag возвращает страницу продуктов по фильтру тегов,
// отсортированных по убыванию даты публикации.
func (s *Storage) ListByTag(ctx context.Context, search string, page, limit int64) ([]*models.Product, error) {
	const op = "storage.mongodb.ListByTag"

	result, err := s.findPage(ctx, tagFilter(search), page, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAccepted возвращает страницу одобренных продуктов.
func (s *Storage) ListAccepted(ctx context.Context, page, limit int64) ([]*models.Product, error) {
	const op = "storage.mongodb.ListAccepted"

	result, err := s.findPage(ctx, bson.M{"status": models.StatusAccepted}, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func tagFilter(search string) bson.M {
	return bson.M{"tags": bson.M{"$regex": search, "$options": "i"}}
}

func (s *Storage) findPage(ctx context.Context, filter bson.M, page, limit int64) ([]*models.Product, error) {
	cur, err := s.products.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "posted", Value: -1}}).
		SetSkip(page*limit).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var result []*models.Product
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TrendingProducts возвращает n продуктов с наибольшим числом голосов "за".
func (s *Storage) TrendingProducts(ctx context.Context, n int64) ([]*models.Product, error) {
	const op = "storage.mongodb.TrendingProducts"

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{"voteCount": bson.M{"$size": "$upvotes"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "voteCount", Value: -1}}}},
		{{Key: "$limit", Value: n}},
	}
	cur, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var result []*models.Product
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProductFields обновляет имя, теги и статус продукта.
// Пустые значения не затираются.
func (s *Storage) UpdateProductFields(ctx context.Context, id primitive.ObjectID, name string, tags []string, status models.ProductStatus) (int64, error) {
	const op = "storage.mongodb.UpdateProductFields"

	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if tags != nil {
		set["tags"] = tags
	}
	if status != "" {
		set["status"] = status
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := s.products.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// AppendVote дописывает email голосующего в соответствующий список.
// Дубликаты не подавляются: повторный голос добавляется еще раз.
func (s *Storage) AppendVote(ctx context.Context, id primitive.ObjectID, kind models.VoteKind, email string) (int64, error) {
	const op = "storage.mongodb.AppendVote"

	res, err := s.products.UpdateByID(ctx, id, bson.M{"$push": bson.M{string(kind): email}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// SetReported помечает продукт как обжалованный.
func (s *Storage) SetReported(ctx context.Context, id primitive.ObjectID) (int64, error) {
	const op = "storage.mongodb.SetReported"

	res, err := s.products.UpdateByID(ctx, id, bson.M{"$set": bson.M{"reported": true}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// AppendReview дописывает отзыв в документ продукта.
func (s *Storage) AppendReview(ctx context.Context, id primitive.ObjectID, review models.Review) (int64, error) {
	const op = "storage.mongodb.AppendReview"

	res, err := s.products.UpdateByID(ctx, id, bson.M{"$push": bson.M{"reviews": review}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.ModifiedCount, nil
}

// DeleteProduct удаляет продукт и возвращает удаленный документ,
// чтобы вызывающая сторона могла вернуть квоту владельцу.
func (s *Storage) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	const op = "storage.mongodb.DeleteProduct"

	var p models.Product
	err := s.products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
