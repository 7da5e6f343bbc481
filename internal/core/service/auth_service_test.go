package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/record-admin/internal/core/domain"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService("admin", hashPassword(t, "s3cret"), "secret", time.Hour)

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "admin" {
		t.Fatalf("expected sub admin, got %v", claims["sub"])
	}
	if claims["role"] != OperatorRole {
		t.Fatalf("expected role %s, got %v", OperatorRole, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService("admin", hashPassword(t, "goodpass"), "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "admin", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService("admin", hashPassword(t, "pass"), "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Disabled(t *testing.T) {
	svc := NewAuthService("admin", "", "", time.Hour)

	if svc.Enabled() {
		t.Fatal("expected auth to be disabled without secret and hash")
	}
	if _, err := svc.Login(context.Background(), "admin", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
