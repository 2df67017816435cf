package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway — запас до exp, в пределах которого токен считаем истёкшим:
// запрос с почти истёкшим токеном долетит до сервера уже просроченным.
const expiryLeeway = 10 * time.Second

// tokenVisiblyExpired сообщает, истёк ли access-токен по его же claims.
// Подпись не проверяется (ключа у клиента нет и быть не должно) — это лишь
// оптимизация, позволяющая обновить токен до неизбежного 401. Непрозрачные
// токены и токены без exp считаются живыми: их судьбу решит сервер.
func tokenVisiblyExpired(token string) bool {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now().Add(expiryLeeway))
}
