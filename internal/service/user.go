package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ifc-reuse-backend/internal/auth"
	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateJWT(user *models.User) (string, error)
	TokenTTL() time.Duration
}

// UserService handles registration and login
type UserService struct {
	repo      repository.UserRepositoryInterface
	tokens    TokenIssuer
	validator *validator.Validate
	isAdmin   func(email string) bool
}

// NewUserService creates a new user service. isAdmin decides which emails
// are registered with the admin role; nil means none.
func NewUserService(repo repository.UserRepositoryInterface, tokens TokenIssuer, validator *validator.Validate, isAdmin func(email string) bool) *UserService {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &UserService{
		repo:      repo,
		tokens:    tokens,
		validator: validator,
		isAdmin:   isAdmin,
	}
}

// RegisterRequest represents the data needed to create an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100" example:"Jane Planner"`
	Email    string `json:"email" validate:"required,email,max=255" example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"correct horse"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"correct horse"`
}

// UserResponse represents the response data for a user
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the access token and the user profile
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"Bearer"`
	ExpiresIn   int64        `json:"expires_in" example:"86400"`
	User        UserResponse `json:"user"`
}

// Register creates a new account
func (s *UserService) Register(req *RegisterRequest) (*UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	// Check if email already exists
	if existing, err := s.repo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.UserRoleUser
	if s.isAdmin(req.Email) {
		role = models.UserRoleAdmin
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.convertToResponse(user), nil
}

// Login verifies credentials and issues an access token
func (s *UserService) Login(req *LoginRequest) (*LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TokenTTL().Seconds()),
		User:        *s.convertToResponse(user),
	}, nil
}

// GetByID retrieves a user profile
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.convertToResponse(user), nil
}

func (s *UserService) convertToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
