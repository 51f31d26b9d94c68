// Package jwt реализует выпуск и разбор JWT токенов сервиса.
//
// Токен несет только идентификационный claim (email); роль в токен
// не зашивается — она читается из каталога пользователей на каждом
// запросе, поэтому смена роли действует со следующего запроса.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для указанного email.
	GenerateToken(email string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker на секретном ключе процесса
// и фиксированном времени жизни токена. Ротация ключа инвалидирует
// все выпущенные токены.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
