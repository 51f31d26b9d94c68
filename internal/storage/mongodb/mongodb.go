// Package mongodb реализует хранилище сервиса поверх MongoDB.
//
// Storage держит один долгоживущий клиент, безопасный для конкурентного
// использования, и коллекции users, products, coupons, reports.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotFound возвращается, когда запрошенный документ отсутствует.
var ErrNotFound = errors.New("document not found")

// ErrQuotaExceeded возвращается, когда квота пользователя на продукты исчерпана.
var ErrQuotaExceeded = errors.New("product limit exceeded")

// Storage инкапсулирует подключение к MongoDB и коллекции сервиса.
type Storage struct {
	client   *mongo.Client
	users    *mongo.Collection
	products *mongo.Collection
	coupons  *mongo.Collection
	reports  *mongo.Collection
}

// New подключается к MongoDB, проверяет соединение ping-ом и
// создает уникальный индекс по email пользователей.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(database)
	s := &Storage{
		client:   client,
		users:    db.Collection("users"),
		products: db.Collection("products"),
		coupons:  db.Collection("coupons"),
		reports:  db.Collection("reports"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "posted", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create products posted index: %w", err)
	}
	return nil
}

// Close разрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
