// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/iitigpt/go-campusgpt/internal/auth"
	"github.com/iitigpt/go-campusgpt/internal/domain"
	"github.com/iitigpt/go-campusgpt/internal/repository/user"
)

// ErrInvalidCredentials is deliberately undifferentiated: an unknown email
// and a wrong password produce the same failure, so login never reveals
// whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService is the credential side of authentication: registration, login,
// and bearer-token validation for the middleware.
type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey []byte
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		logger:       logger,
	}
}

// Register creates a new account and immediately issues a token for it.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if err := validateRegistrationInput(email, password); err != nil {
		s.logger.Warn("registration validation failed", "email", maskEmail(email), "error", err.Error())
		return nil, "", err
	}

	newUser := &domain.User{Email: email, Name: name}
	if err := newUser.HashPassword(password); err != nil {
		s.logger.Error("password hashing failed", "email", maskEmail(email), "error", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			s.logger.Warn("registration failed, email already registered", "email", maskEmail(email))
			return nil, "", err
		}
		s.logger.Error("user creation failed", "email", maskEmail(email), "error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.GenerateToken(created.ID, created.Email, s.jwtSecretKey, auth.TokenValidity)
	if err != nil {
		s.logger.Error("token generation failed", "user_id", created.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "email", maskEmail(email))
	return created, token, nil
}

// Login authenticates a user by email and password and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed", "email", maskEmail(email), "reason", "user_not_found")
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed", "email", maskEmail(email), "user_id", account.ID, "reason", "invalid_password")
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, account.Email, s.jwtSecretKey, auth.TokenValidity)
	if err != nil {
		s.logger.Error("token generation failed", "user_id", account.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", account.ID, "email", maskEmail(email))
	return account, token, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return auth.ValidateToken(tokenString, s.jwtSecretKey)
}

func validateRegistrationInput(email, password string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email address")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}
