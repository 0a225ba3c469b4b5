package config

import (
	"strings"
	"testing"
)

var configEnvVars = []string{
	"ENVIRONMENT",
	"PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"JWT_SECRET",
	"JWT_ISSUER",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
		check   func(*testing.T, *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, config *Config) {
				if config.Environment != "development" {
					t.Errorf("Expected default environment development, got %s", config.Environment)
				}
				if config.Port != "3000" {
					t.Errorf("Expected default port 3000, got %s", config.Port)
				}
				if config.Log.Level != "info" || config.Log.Format != "text" {
					t.Errorf("Expected info/text logging, got %s/%s", config.Log.Level, config.Log.Format)
				}
				if config.Auth.Enabled() {
					t.Error("Expected auth to be disabled without a secret")
				}
				if config.RateLimit.RequestsPerSecond != 0 {
					t.Errorf("Expected rate limiting disabled, got %f", config.RateLimit.RequestsPerSecond)
				}
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"ENVIRONMENT":      "production",
				"PORT":             "8080",
				"LOG_LEVEL":        "debug",
				"LOG_FORMAT":       "json",
				"JWT_SECRET":       "0123456789abcdef0123",
				"RATE_LIMIT_RPS":   "2.5",
				"RATE_LIMIT_BURST": "5",
			},
			check: func(t *testing.T, config *Config) {
				if config.Environment != "production" {
					t.Errorf("Expected environment production, got %s", config.Environment)
				}
				if config.Port != "8080" {
					t.Errorf("Expected port 8080, got %s", config.Port)
				}
				if config.Log.Level != "debug" || config.Log.Format != "json" {
					t.Errorf("Expected debug/json logging, got %s/%s", config.Log.Level, config.Log.Format)
				}
				if !config.Auth.Enabled() {
					t.Error("Expected auth to be enabled")
				}
				if config.RateLimit.RequestsPerSecond != 2.5 || config.RateLimit.Burst != 5 {
					t.Errorf("Expected rate limit 2.5/5, got %f/%d", config.RateLimit.RequestsPerSecond, config.RateLimit.Burst)
				}
			},
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "Config.Log.Level must be one of",
		},
		{
			name:    "non numeric port",
			envVars: map[string]string{"PORT": "http"},
			wantErr: "Config.Port must be numeric",
		},
		{
			name:    "short jwt secret",
			envVars: map[string]string{"JWT_SECRET": "short"},
			wantErr: "Config.Auth.JWTSecret must be at least 16 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			config, err := Load()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, config)
		})
	}
}

func TestDetectServerless(t *testing.T) {
	tests := []struct {
		name         string
		envVars      map[string]string
		wantPlatform string
		wantStage    string
	}{
		{name: "local", envVars: map[string]string{}, wantPlatform: "", wantStage: "dev"},
		{name: "vercel", envVars: map[string]string{"VERCEL": "1", "VERCEL_ENV": "preview"}, wantPlatform: PlatformVercel, wantStage: "preview"},
		{name: "aws", envVars: map[string]string{"AWS_LAMBDA_FUNCTION_NAME": "user", "STAGE": "prod"}, wantPlatform: PlatformAWS, wantStage: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"VERCEL", "VERCEL_ENV", "VERCEL_REGION", "AWS_LAMBDA_FUNCTION_NAME", "AWS_REGION", "STAGE"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			sc := DetectServerless()
			if sc.Platform != tt.wantPlatform {
				t.Errorf("Expected platform %q, got %q", tt.wantPlatform, sc.Platform)
			}
			if sc.IsServerless != (tt.wantPlatform != "") {
				t.Errorf("Expected IsServerless %v, got %v", tt.wantPlatform != "", sc.IsServerless)
			}
			if sc.Stage != tt.wantStage {
				t.Errorf("Expected stage %q, got %q", tt.wantStage, sc.Stage)
			}
		})
	}
}

func TestAdaptConfigForServerless(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "development",
			Port:        "3000",
			Log:         LogConfig{Level: "info", Format: "text"},
			RateLimit:   RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
		}
	}

	local := AdaptConfigForServerless(&ServerlessConfig{}, base())
	if local.Log.Format != "text" || local.RateLimit.RequestsPerSecond != 5 {
		t.Errorf("Expected local config unchanged, got %+v", local)
	}

	adapted := AdaptConfigForServerless(&ServerlessConfig{IsServerless: true, Platform: PlatformVercel, Stage: "production"}, base())
	if adapted.Log.Format != "json" {
		t.Errorf("Expected json logging in serverless mode, got %s", adapted.Log.Format)
	}
	if adapted.Environment != "production" {
		t.Errorf("Expected production environment, got %s", adapted.Environment)
	}
	if adapted.RateLimit.RequestsPerSecond != 0 {
		t.Errorf("Expected rate limiting disabled, got %f", adapted.RateLimit.RequestsPerSecond)
	}
}
