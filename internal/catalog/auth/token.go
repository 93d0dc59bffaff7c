// Package auth выдаёт и проверяет dev-токены каталога (JWT, HS256).
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL — срок жизни dev-токена
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка токена
type Claims struct {
	jwt.RegisteredClaims
	Customer string `json:"customer"`
}

// Issue подписывает токен для покупателя
func Issue(customer, secret string, now time.Time) (string, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return "", errors.New("customer is required")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Customer: customer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок и возвращает покупателя
func Parse(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Customer == "" {
		return "", ErrInvalidToken
	}
	return claims.Customer, nil
}

type ctxKey int

const customerKey ctxKey = iota

// WithBearer кладёт покупателя в контекст, если пришёл валидный Bearer-токен.
// Без токена (или с невалидным) запрос проходит анонимно: каталог публичный.
func WithBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r.Header.Get("Authorization"))
			if ok {
				if customer, err := Parse(raw, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), customerKey, customer))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCustomerFromContext достаёт покупателя из контекста
func GetCustomerFromContext(ctx context.Context) (string, bool) {
	customer, ok := ctx.Value(customerKey).(string)
	return customer, ok && customer != ""
}

func bearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
