package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "edificios_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("CORS_ORIGINS", "http://localhost:3000,https://demo.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.MongoDB.Database != "edificios_test" {
		t.Fatalf("unexpected database: %q", cfg.MongoDB.Database)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected a default server port")
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORS.Origins)
	}
	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		t.Fatalf("expected rate limit defaults, got %+v", cfg.RateLimit)
	}
}
