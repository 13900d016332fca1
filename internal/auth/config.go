package auth

import (
	"fmt"
	"time"

	"ifc-reuse-backend/internal/config"
)

const (
	defaultIssuer   = "ifc-reuse-backend"
	defaultTokenTTL = 24 * time.Hour
)

// AuthConfig holds the token signing configuration
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" json:"token_ttl"`
	Issuer    string        `yaml:"issuer" json:"issuer"`
}

// NewAuthConfig derives the auth configuration from the application config
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Issuer:    defaultIssuer,
	}
}

// ValidateConfig validates the auth configuration and fills in defaults
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("token TTL must not be negative")
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	return nil
}
