package middleware

import (
	"fmt"
	"strings"

	"github.com/campusconnect/lost-and-found-api/internal/constants"
	"github.com/campusconnect/lost-and-found-api/internal/database"
	apierrors "github.com/campusconnect/lost-and-found-api/internal/errors"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// RequireAuth resolves the request's bearer credential (accessToken cookie or
// Authorization header) to a user record and stores it in the context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			apierrors.Unauthorized(c, "Unauthorized request")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			apierrors.Unauthorized(c, "Invalid access token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apierrors.Unauthorized(c, "Invalid token payload")
			c.Abort()
			return
		}

		rawID, ok := claims["user_id"].(float64)
		if !ok || rawID <= 0 {
			apierrors.Unauthorized(c, "Invalid token payload")
			c.Abort()
			return
		}
		userID := uint64(rawID)

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			zap.L().Warn("token references missing user", zap.Uint64("user_id", userID))
			apierrors.Unauthorized(c, "User not found with given token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.AccessTokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetUser retrieves the full authenticated user from context.
func GetUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := raw.(models.User)
	return user, ok
}
