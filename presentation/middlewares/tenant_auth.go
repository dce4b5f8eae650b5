package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	tenantContextKey = "tenant"
	roomIDContextKey = "roomID"
)

// TenantAuthMiddleware authenticates platform-signed requests. The platform
// signs every call with the shared secret issued at install time, carrying
// the client key as the JWT issuer; the token arrives either in the
// Authorization header or as a signed_request query parameter.
func TenantAuthMiddleware(tenants repository.TenantRepository, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing signed request",
			})
			return
		}

		var tenant *model.Tenant

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}

			claims, ok := t.Claims.(jwt.MapClaims)
			if !ok {
				return nil, fmt.Errorf("unexpected claims type")
			}
			issuer, _ := claims["iss"].(string)
			if issuer == "" {
				return nil, fmt.Errorf("token has no issuer")
			}

			loaded, err := tenants.GetByClientKey(c.Request.Context(), issuer)
			if err != nil {
				return nil, fmt.Errorf("failed to load install record: %w", err)
			}

			tenant = loaded
			return []byte(loaded.OAuthSecret), nil
		})
		if err != nil || !token.Valid {
			log.Warn("rejected signed request",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid signed request",
			})
			return
		}

		c.Set(tenantContextKey, tenant)
		if roomID := roomIDFromClaims(token.Claims); roomID != "" {
			c.Set(roomIDContextKey, roomID)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	for _, scheme := range []string{"JWT ", "Bearer "} {
		if len(auth) > len(scheme) && strings.EqualFold(auth[:len(scheme)], scheme) {
			return auth[len(scheme):]
		}
	}
	return c.Query("signed_request")
}

// roomIDFromClaims digs the room id out of the token's context claim. Room
// scoped calls carry it; installable callbacks do not.
func roomIDFromClaims(claims jwt.Claims) string {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	contextClaim, ok := mapClaims["context"].(map[string]any)
	if !ok {
		return ""
	}
	switch v := contextClaim["room_id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

func GetTenantFromContext(c *gin.Context) (*model.Tenant, bool) {
	value, exists := c.Get(tenantContextKey)
	if !exists {
		return nil, false
	}
	tenant, ok := value.(*model.Tenant)
	return tenant, ok
}

func GetRoomIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(roomIDContextKey)
	if !exists {
		return "", false
	}
	roomID, ok := value.(string)
	return roomID, ok && roomID != ""
}
