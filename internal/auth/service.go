package auth

import (
	"fmt"
	"time"

	"ifc-reuse-backend/internal/database/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues and validates API access tokens
type AuthService struct {
	config *AuthConfig
	now    func() time.Time
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               uuid.UUID `json:"user_id" example:"7f1e2c38-9b0a-4b6f-8d7e-2f5a3c9b1d00"`
	Email                string    `json:"email" example:"jane@example.com"`
	Name                 string    `json:"name" example:"Jane Planner"`
	Role                 string    `json:"role" example:"user"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// IsAdmin reports whether the token carries the admin role
func (c *AuthClaims) IsAdmin() bool {
	return c != nil && c.Role == string(models.UserRoleAdmin)
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	return &AuthService{config: config, now: time.Now}, nil
}

// TokenTTL is the lifetime of issued tokens
func (s *AuthService) TokenTTL() time.Duration {
	return s.config.TokenTTL
}

// GenerateJWT creates a signed token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := &AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		if claims.UserID == uuid.Nil {
			return nil, fmt.Errorf("token has no subject")
		}
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
