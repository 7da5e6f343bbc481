package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
)

// OperatorRole is the role claim carried by back-office tokens.
const OperatorRole = "operator"

// AuthService authenticates the single back-office operator configured
// through the environment.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    string
	tokenTTL     time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

// Enabled reports whether tokens can be issued at all.
func (s *AuthService) Enabled() bool {
	return s.jwtSecret != "" && len(s.passwordHash) > 0
}

func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	if !s.Enabled() || username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if username != s.username {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(username)
}

func (s *AuthService) generateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": OperatorRole,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
