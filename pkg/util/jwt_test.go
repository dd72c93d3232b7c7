package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateShopToken(t *testing.T) {
	token, err := GenerateShopToken("demo-shop.example.com", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateShopToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "demo-shop.example.com", claims.Shop)
	assert.Equal(t, "demo-shop.example.com", claims.Subject)
}

func TestValidateShopToken_WrongSecret(t *testing.T) {
	token, err := GenerateShopToken("demo-shop.example.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateShopToken(token, "different-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateShopToken_Expired(t *testing.T) {
	token, err := GenerateShopToken("demo-shop.example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateShopToken(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateShopToken_Malformed(t *testing.T) {
	claims, err := ValidateShopToken("not-a-token", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateShopToken_MissingShopClaim(t *testing.T) {
	// A token signed with the right secret but carrying no shop claim must
	// still be rejected.
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ShopClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := ValidateShopToken(signed, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
