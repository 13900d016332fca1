package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid  bool        `json:"valid" example:"true"`
	Claims *AuthClaims `json:"claims"`
}

// AuthLogoutResponse represents the response from the logout endpoint
type AuthLogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// AuthHandler exposes token utilities over HTTP
type AuthHandler struct {
	service TokenValidator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service TokenValidator) *AuthHandler {
	return &AuthHandler{service: service}
}

// Logout godoc
// @Summary Logout
// @Description Tokens are stateless; clients discard them. The endpoint exists so front ends have one logout call.
// @Tags authentication
// @Produce json
// @Success 200 {object} AuthLogoutResponse "Successfully logged out"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, AuthLogoutResponse{Message: "Logged out successfully"})
}

// ValidateToken godoc
// @Summary Validate JWT token
// @Description Validate JWT token and return token claims
// @Tags authentication
// @Produce json
// @Param Authorization header string true "Bearer token to validate"
// @Success 200 {object} AuthValidateResponse "Token is valid with claims"
// @Failure 401 {object} map[string]interface{} "Authorization header required or token invalid"
// @Router /api/auth/validate [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		return
	}

	// Extract token from Bearer header
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		return
	}

	claims, err := h.service.ValidateJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, AuthValidateResponse{Valid: true, Claims: claims})
}
