package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ShopClaims are the claims embedded in a shop session token. The platform
// issues these tokens when an admin opens the app; the backend only validates
// them and scopes every admin operation to the shop they name.
type ShopClaims struct {
	Shop string `json:"shop"`
	jwt.RegisteredClaims
}

// GenerateShopToken creates a signed session token for the given shop.
// Used by tooling and tests; production tokens come from the platform.
func GenerateShopToken(shop, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := ShopClaims{
		Shop: shop,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shop,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateShopToken parses and validates a shop session token.
func ValidateShopToken(tokenString, secret string) (*ShopClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShopClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
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

	claims, ok := token.Claims.(*ShopClaims)
	if !ok || !token.Valid || claims.Shop == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
