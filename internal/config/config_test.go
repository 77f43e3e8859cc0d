package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testAppSecret = "this-is-a-very-long-secret-key-with-more-than-32-bytes"

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*testing.T)
		wantError bool
		validate  func(*testing.T, *Config)
	}{
		{
			name: "all defaults",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
			},
			wantError: false,
			validate: func(t *testing.T, c *Config) {
				if c.Env != EnvDev {
					t.Errorf("expected Env %q, got %q", EnvDev, c.Env)
				}
				if c.HostOrigin != "http://localhost:8080" {
					t.Errorf("expected HostOrigin %q, got %q", "http://localhost:8080", c.HostOrigin)
				}
				if c.AppSecret.Version != "1" {
					t.Errorf("expected AppSecret.Version %q, got %q", "1", c.AppSecret.Version)
				}
				if c.Database.Port != 5432 {
					t.Errorf("expected Database.Port 5432, got %d", c.Database.Port)
				}
				if c.Database.Host != "localhost" {
					t.Errorf("expected Database.Host %q, got %q", "localhost", c.Database.Host)
				}
				if c.ShortLink.MinLength != DefaultShortLinkMinLength {
					t.Errorf("expected ShortLink.MinLength %d, got %d", DefaultShortLinkMinLength, c.ShortLink.MinLength)
				}
				if c.ShortLink.MaxLength != DefaultShortLinkMaxLength {
					t.Errorf("expected ShortLink.MaxLength %d, got %d", DefaultShortLinkMaxLength, c.ShortLink.MaxLength)
				}
				if c.AppSecret.Value == nil {
					t.Error("expected AppSecret.Value to be set, got nil")
				}
			},
		},
		{
			name: "custom environment values",
			setup: func(t *testing.T) {
				t.Setenv("ENV", "PROD")
				t.Setenv("HOST_ORIGIN", "https://foodgram.example")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("APP_SECRET_VERSION", "2")
				t.Setenv("DATABASE_USER", "customuser")
				t.Setenv("DATABASE_PASSWORD", "custompass")
				t.Setenv("DATABASE", "customdb")
				t.Setenv("DATABASE_HOST", "db.foodgram.example")
				t.Setenv("DATABASE_PORT", "5433")
				t.Setenv("SHORT_LINK_MIN_LENGTH", "20")
				t.Setenv("SHORT_LINK_MAX_LENGTH", "30")
				t.Setenv("ADMIN_USERNAME", "admin")
				t.Setenv("ADMIN_EMAIL", "admin@foodgram.example")
				t.Setenv("ADMIN_PASSWORD", "SecureP@ss123!")
			},
			wantError: false,
			validate: func(t *testing.T, c *Config) {
				if c.Env != EnvProd {
					t.Errorf("expected Env %q, got %q", EnvProd, c.Env)
				}
				if c.HostOrigin != "https://foodgram.example" {
					t.Errorf("expected HostOrigin %q, got %q", "https://foodgram.example", c.HostOrigin)
				}
				if c.AppSecret.Version != "2" {
					t.Errorf("expected AppSecret.Version %q, got %q", "2", c.AppSecret.Version)
				}
				if c.Database.Host != "db.foodgram.example" {
					t.Errorf("expected Database.Host %q, got %q", "db.foodgram.example", c.Database.Host)
				}
				if c.Database.Port != 5433 {
					t.Errorf("expected Database.Port 5433, got %d", c.Database.Port)
				}
				if c.ShortLink.MinLength != 20 {
					t.Errorf("expected ShortLink.MinLength 20, got %d", c.ShortLink.MinLength)
				}
				if c.ShortLink.MaxLength != 30 {
					t.Errorf("expected ShortLink.MaxLength 30, got %d", c.ShortLink.MaxLength)
				}
				if c.Admin.Username != "admin" {
					t.Errorf("expected Admin.Username %q, got %q", "admin", c.Admin.Username)
				}
			},
		},
		{
			name: "invalid database port",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("DATABASE_PORT", "not-a-port")
			},
			wantError: true,
		},
		{
			name: "invalid short link min length",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("SHORT_LINK_MIN_LENGTH", "abc")
			},
			wantError: true,
		},
		{
			name: "short link max below min",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("SHORT_LINK_MIN_LENGTH", "30")
				t.Setenv("SHORT_LINK_MAX_LENGTH", "20")
			},
			wantError: true,
		},
		{
			name: "weak admin password",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("ADMIN_USERNAME", "admin")
				t.Setenv("ADMIN_EMAIL", "admin@foodgram.example")
				t.Setenv("ADMIN_PASSWORD", "weak")
			},
			wantError: true,
		},
		{
			name: "admin credentials must be complete",
			setup: func(t *testing.T) {
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
				t.Setenv("APP_SECRET", testAppSecret)
				t.Setenv("ADMIN_EMAIL", "admin@foodgram.example")
				t.Setenv("ADMIN_PASSWORD", "SecureP@ss123!")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			config, err := loadConfigFromEnv()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfigFromEnv() error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, &config)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	contents := `
app_secret:
  value: ` + testAppSecret + `
  version: "3"
database:
  host: db.internal
  port: 5433
  database: foodgram
  user: foodgram
  password: foodgrampass
short_link:
  min_length: 18
  max_length: 24
host_origin: https://foodgram.example
env: PROD
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	config, err := loadConfigFromFile(path)
	if err != nil {
		t.Fatalf("loadConfigFromFile() error = %v", err)
	}

	if config.Env != EnvProd {
		t.Errorf("expected Env %q, got %q", EnvProd, config.Env)
	}
	if config.Database.Host != "db.internal" {
		t.Errorf("expected Database.Host %q, got %q", "db.internal", config.Database.Host)
	}
	if config.ShortLink.MinLength != 18 {
		t.Errorf("expected ShortLink.MinLength 18, got %d", config.ShortLink.MinLength)
	}
	if config.ShortLink.MaxLength != 24 {
		t.Errorf("expected ShortLink.MaxLength 24, got %d", config.ShortLink.MaxLength)
	}
	if config.AppSecret.Version != "3" {
		t.Errorf("expected AppSecret.Version %q, got %q", "3", config.AppSecret.Version)
	}
	if config.AppSecret.Value == nil || string(*config.AppSecret.Value) != testAppSecret {
		t.Error("expected AppSecret.Value to match file contents")
	}
}

func TestLoadConfigFromFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	contents := `
app_secret:
  value: ` + testAppSecret + `
database:
  host: db.internal
  port: 5433
  database: foodgram
  user: foodgram
  password: foodgrampass
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	config, err := loadConfigFromFile(path)
	if err != nil {
		t.Fatalf("loadConfigFromFile() error = %v", err)
	}

	if config.Env != EnvDev {
		t.Errorf("expected Env %q, got %q", EnvDev, config.Env)
	}
	if config.ShortLink.MinLength != DefaultShortLinkMinLength {
		t.Errorf("expected ShortLink.MinLength %d, got %d", DefaultShortLinkMinLength, config.ShortLink.MinLength)
	}
	if config.ShortLink.MaxLength != DefaultShortLinkMaxLength {
		t.Errorf("expected ShortLink.MaxLength %d, got %d", DefaultShortLinkMaxLength, config.ShortLink.MaxLength)
	}
}
