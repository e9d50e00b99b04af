package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if !cfg.Development() {
		t.Errorf("expected development env, got %q", cfg.Env)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Errorf("expected external stores disabled by default, got %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Errorf("expected 24h idempotency ttl, got %v", cfg.Idempotency.TTL)
	}
	if cfg.Audit.Workers != 4 {
		t.Errorf("expected 4 audit workers, got %d", cfg.Audit.Workers)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "9090",
		"ENV":              "production",
		"MONGO_URI":        "mongodb://mongo:27017",
		"REDIS_ADDR":       "redis:6379",
		"RATE_LIMIT_RPS":   "0",
		"SHUTDOWN_TIMEOUT": "3s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.Development() {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.Database != "marketplace" {
		t.Errorf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
	if cfg.RateLimitRPS != 0 {
		t.Errorf("expected limiter disabled, got %v", cfg.RateLimitRPS)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadWith_InvalidValue(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUDIT_WORKERS": "many",
	}))
	if err == nil {
		t.Fatal("expected error for non-numeric AUDIT_WORKERS")
	}
}
