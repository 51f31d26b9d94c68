package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon представляет скидочный купон. Плоская запись без связей.
type Coupon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code        string             `bson:"code" json:"code"`
	Discount    int                `bson:"discount" json:"discount"` // Скидка в процентах
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Expires     time.Time          `bson:"expires" json:"expires"`
}
