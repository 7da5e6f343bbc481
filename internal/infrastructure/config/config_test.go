package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.KeyPrefix != "crud_app_" || !cfg.Store.SeedSample {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Attachment.MaxBytes != 5<<20 {
		t.Errorf("attachment limit: got %d", cfg.Attachment.MaxBytes)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("token ttl: got %s", cfg.Auth.TokenTTL)
	}
	if cfg.AuthEnabled() {
		t.Error("auth must be disabled without JWT_SECRET")
	}
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER": "leveldb",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestLoadFrom_AuthRequiresPasswordHash(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err == nil {
		t.Fatal("expected error when ADMIN_PASSWORD_HASH is missing")
	}

	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
		"STORE_DRIVER":        "memory",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("auth must be enabled with JWT_SECRET")
	}
}
