package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.VerifyWorkers != 4 || cfg.ShutdownTimeout != 10*time.Second || cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mongo.Database != "iron_guard" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Seed.Enabled() {
		t.Fatalf("seed must be disabled without credentials")
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"PORT":                "9090",
		"ENV":                 "production",
		"VERIFY_WORKERS":      "8",
		"IDEMPOTENCY_TTL":     "1h",
		"MONGO_DB":            "inventory",
		"REDIS_DB":            "2",
		"SEED_ADMIN_EMAIL":    "root@example.com",
		"SEED_ADMIN_PASSWORD": "change-me",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Port != "9090" || cfg.IsDevelopment() || cfg.VerifyWorkers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.IdempotencyTTL != time.Hour || cfg.Mongo.Database != "inventory" || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.Seed.Enabled() {
		t.Fatalf("seed must be enabled")
	}
}
