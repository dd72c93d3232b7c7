package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wdmapp/delivery-map-backend/internal/errors"
	"github.com/wdmapp/delivery-map-backend/pkg/util"
)

// ShopKey is the gin context key holding the authenticated shop domain.
const ShopKey = "shop"

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the shop session token issued by the platform and
// scopes the request to the shop the token names. Every admin handler relies
// on the shop set here, never on request parameters.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := util.ValidateShopToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid session token")
			}
			c.Abort()
			return
		}

		c.Set(ShopKey, claims.Shop)

		log.Debug("Shop session authenticated", map[string]interface{}{
			"shop": claims.Shop,
		})

		c.Next()
	}
}

// GetShop extracts the authenticated shop domain from context
func GetShop(c *gin.Context) (string, bool) {
	shop, exists := c.Get(ShopKey)
	if !exists {
		return "", false
	}
	s, ok := shop.(string)
	return s, ok && s != ""
}
