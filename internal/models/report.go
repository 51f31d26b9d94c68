package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report представляет жалобу на продукт.
type Report struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Email     string             `bson:"email" json:"email"` // Кто пожаловался
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Created   time.Time          `bson:"created" json:"created"`
}
