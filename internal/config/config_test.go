package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/clinic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.TokenTTLMinutes != 120 {
		t.Errorf("TokenTTLMinutes = %d, want 120", cfg.TokenTTLMinutes)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool bounds = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/clinic")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction")
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL())
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid development without secret",
			cfg:  Config{Env: "development", DatabaseURL: "postgres://x", BcryptCost: 10},
		},
		{
			name:    "missing database url",
			cfg:     Config{Env: "development"},
			wantErr: true,
		},
		{
			name:    "production requires jwt secret",
			cfg:     Config{Env: "production", DatabaseURL: "postgres://x"},
			wantErr: true,
		},
		{
			name: "production with secret",
			cfg:  Config{Env: "production", DatabaseURL: "postgres://x", JWTSecret: "s"},
		},
		{
			name:    "negative ttl",
			cfg:     Config{Env: "development", DatabaseURL: "postgres://x", TokenTTLMinutes: -5},
			wantErr: true,
		},
		{
			name:    "bcrypt cost out of range",
			cfg:     Config{Env: "development", DatabaseURL: "postgres://x", BcryptCost: 40},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTokenTTLFallback(t *testing.T) {
	c := Config{TokenTTLMinutes: 0}
	if c.TokenTTL() != 120*time.Minute {
		t.Errorf("TokenTTL = %v, want 2h", c.TokenTTL())
	}
}
