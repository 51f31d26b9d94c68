package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStatus — статус модерации продукта.
type ProductStatus string

const (
	// StatusPending — продукт ожидает решения модератора.
	StatusPending ProductStatus = "Pending"
	// StatusAccepted — продукт одобрен и виден в общем списке.
	StatusAccepted ProductStatus = "Accepted"
	// StatusRejected — продукт отклонен.
	StatusRejected ProductStatus = "Rejected"
)

// ParseProductStatus преобразует строку в ProductStatus.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return ProductStatus(s), nil
	default:
		return "", fmt.Errorf("unknown product status: %q", s)
	}
}

// VoteKind — направление голоса, совпадает с именем bson-поля продукта.
type VoteKind string

const (
	// VoteUp — голос за продукт.
	VoteUp VoteKind = "upvotes"
	// VoteDown — голос против продукта.
	VoteDown VoteKind = "downvotes"
)

// ParseVoteKind преобразует строку в VoteKind.
func ParseVoteKind(s string) (VoteKind, error) {
	switch VoteKind(s) {
	case VoteUp, VoteDown:
		return VoteKind(s), nil
	default:
		return "", fmt.Errorf("unknown vote kind: %q", s)
	}
}

// Review — отзыв, вложенный в документ продукта. Отдельно не адресуется.
type Review struct {
	Email   string  `bson:"email" json:"email"`
	Name    string  `bson:"name" json:"name"`
	Comment string  `bson:"comment" json:"comment"`
	Rating  float64 `bson:"rating" json:"rating"`
}

// Product представляет опубликованный продукт.
//
// Upvotes и Downvotes — упорядоченные списки email проголосовавших,
// только добавление, дубликаты не подавляются.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Tags       []string           `bson:"tags" json:"tags"`
	Status     ProductStatus      `bson:"status" json:"status"`
	OwnerEmail string             `bson:"ownerEmail" json:"ownerEmail"`
	Upvotes    []string           `bson:"upvotes" json:"upvotes"`
	Downvotes  []string           `bson:"downvotes" json:"downvotes"`
	Reviews    []Review           `bson:"reviews" json:"reviews"`
	Reported   bool               `bson:"reported" json:"reported"`
	Posted     time.Time          `bson:"posted" json:"posted"`
}
