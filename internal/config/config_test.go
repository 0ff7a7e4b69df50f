package config

import (
	"os"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "MAX_RANGE_DAYS",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.MaxRangeDays != 2458 {
		t.Errorf("MaxRangeDays = %d, want 2458", cfg.MaxRangeDays)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("MAX_RANGE_DAYS", "350")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.MaxRangeDays != 350 {
		t.Errorf("MaxRangeDays = %d, want 350", cfg.MaxRangeDays)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:         8080,
		Env:          EnvDevelopment,
		DatabasePath: "./data/chronicle.db",
		LogLevel:     "info",
		LogFormat:    "text",
		MaxRangeDays: 2458,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"invalid port", func(c *Config) { c.Port = 0 }, true},
		{"invalid env", func(c *Config) { c.Env = "testing" }, true},
		{"missing database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"production without api key", func(c *Config) { c.Env = EnvProduction }, true},
		{"production with api key", func(c *Config) { c.Env = EnvProduction; c.APIKey = "k" }, false},
		{"invalid log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"non-positive range limit", func(c *Config) { c.MaxRangeDays = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
