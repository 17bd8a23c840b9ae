// Package jwt реализует выпуск и разбор JWT токенов доступа.
//
// Токен несёт только стандартные claims: subject — идентификатор
// пользователя в виде строки, iat/exp — время выпуска и истечения,
// jti — уникальный идентификатор токена. Роль и прочие данные
// пользователя в токен не кладутся: по subject запись пользователя
// поднимается из хранилища при каждой проверке.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает набор данных токена доступа.
type Claims struct {
	jwt.RegisteredClaims
}

// Maker описывает интерфейс для выпуска и разбора токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен для заданного subject.
	GenerateToken(subject string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
