package auth

import (
	"net/http"
	"strings"

	"ifc-reuse-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateJWT(tokenString string) (*AuthClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	service TokenValidator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates JWT tokens and sets user context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateJWT(tokenString)
		if err != nil {
			logger.WithContext(c).WithError(err).Debug("rejected bearer token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth validates JWT tokens if present but doesn't require them
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			c.Next()
			return
		}
		if claims, err := m.service.ValidateJWT(tokenString); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. It must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Administrator role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *AuthClaims) {
	c.Set("user_id", claims.UserID)
	c.Set(logger.EmailKey, claims.Email)
	c.Set("role", claims.Role)
	c.Set("auth_claims", claims)

	// services log from the request context
	c.Request = c.Request.WithContext(logger.WithEmail(c.Request.Context(), claims.Email))
}

// GetUserID is a helper function to extract user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail is a helper function to extract user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(logger.EmailKey)
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetAuthClaims is a helper function to extract full auth claims from context
func GetAuthClaims(c *gin.Context) (*AuthClaims, bool) {
	claims, exists := c.Get("auth_claims")
	if !exists {
		return nil, false
	}

	authClaims, ok := claims.(*AuthClaims)
	return authClaims, ok
}
