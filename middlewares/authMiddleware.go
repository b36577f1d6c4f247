package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"civicsync/logger"
	"civicsync/models"
	"civicsync/services"
	authUtils "civicsync/utils"
)

const (
	// AuthCookie carries the session token set at login.
	AuthCookie = "auth_token"
	// UserKey is the gin context key holding the current models.User.
	UserKey = "user"
)

// AuthMiddleware admits requests whose token belongs to the session's current user.
// The token comes from the Authorization header or the auth_token cookie.
func AuthMiddleware(secret string, session *services.Session, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.Request.Header.Get("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie(AuthCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		userID, err := authUtils.ParseToken(secret, tokenString)
		if err != nil {
			log.Debug("Auth middleware: token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		user, ok := session.CurrentUser()
		if !ok || user.ID != userID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, ok := value.(models.User)
	if !ok {
		return nil
	}
	return &user
}
