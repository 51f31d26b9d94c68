// Package models содержит доменные модели сервиса: пользователей,
// продукты с вложенными отзывами и голосами, купоны и жалобы.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role — закрытый перечень ролей пользователя.
type Role string

const (
	// RoleMember — обычный участник, роль по умолчанию.
	RoleMember Role = "Member"
	// RoleModerator — модератор, проверяет продукты и жалобы.
	RoleModerator Role = "Moderator"
	// RoleAdmin — администратор сервиса.
	RoleAdmin Role = "Admin"
)

// ParseRole преобразует строку в Role, возвращает ошибку для неизвестных значений.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleModerator, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// DefaultProductLimit — стартовая квота на публикацию продуктов.
const DefaultProductLimit = 3

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email          string             `bson:"email" json:"email"`                                       // Электронная почта, уникальный ключ поиска
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`                     // Отображаемое имя
	Role           Role               `bson:"role" json:"role"`                                         // Роль пользователя
	Limit          int                `bson:"limit" json:"limit"`                                       // Оставшаяся квота на продукты
	SubscriptionID string             `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"` // Идентификатор подписки, если оформлена
}
