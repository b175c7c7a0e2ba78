package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid order history token")
	ErrExpiredToken = errors.New("order history token has expired")
)

// OrderHistoryClaims carries the IDs of orders a guest placed, so
// guests can track orders without an account. Stored in a signed
// cookie; the signature keeps guests from claiming others' orders.
type OrderHistoryClaims struct {
	OrderIDs []uint `json:"order_ids"`
	jwt.RegisteredClaims
}

// GenerateOrderHistoryToken signs a token naming the guest's orders.
func GenerateOrderHistoryToken(orderIDs []uint, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := OrderHistoryClaims{
		OrderIDs: orderIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseOrderHistoryToken validates the token and returns the order IDs.
func ParseOrderHistoryToken(tokenString, secret string) ([]uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OrderHistoryClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*OrderHistoryClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims.OrderIDs, nil
}

// AppendOrderToToken adds an order ID to an existing history token and
// re-signs it. A missing or unusable token starts a fresh history
// rather than failing the confirmation flow.
func AppendOrderToToken(tokenString string, orderID uint, secret string, expiry time.Duration) (string, error) {
	var orderIDs []uint
	if tokenString != "" {
		if parsed, err := ParseOrderHistoryToken(tokenString, secret); err == nil {
			orderIDs = parsed
		}
	}

	for _, id := range orderIDs {
		if id == orderID {
			return GenerateOrderHistoryToken(orderIDs, secret, expiry)
		}
	}
	orderIDs = append(orderIDs, orderID)
	return GenerateOrderHistoryToken(orderIDs, secret, expiry)
}
