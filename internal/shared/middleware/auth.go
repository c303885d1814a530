package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"propertypro-backend/internal/shared/authz"
	"propertypro-backend/internal/shared/response"
	"propertypro-backend/pkg/cache"
	"propertypro-backend/pkg/jwt"
	"propertypro-backend/pkg/logger"
)

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// AuthMiddleware - Middleware xác thực JWT token.
// revoked có thể nil (không kiểm tra token đã signout).
func AuthMiddleware(jwtManager *jwt.Manager, revoked cache.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("token rejected", map[string]interface{}{"reason": err.Error()})
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 4. Token đã signout?
		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis down không chặn request, chỉ log lại
				logger.Warn("revocation check failed", err)
			} else if isRevoked {
				response.Unauthorized(c, "token has been revoked")
				c.Abort()
				return
			}
		}

		// 5. Set actor vào context, handler truyền tường minh xuống service
		role := authz.RoleUser
		if claims.Role == string(authz.RoleAdmin) {
			role = authz.RoleAdmin
		}
		c.Set(actorKey, &authz.Actor{UserID: claims.UserID, Role: role})
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// CurrentActor trả về actor đã xác thực, nil nếu route không qua AuthMiddleware
func CurrentActor(c *gin.Context) *authz.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*authz.Actor)
	return actor
}

func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
