package config

import (
	"os"
	"sync"
)

// Platform names reported by ServerlessConfig
const (
	PlatformVercel = "vercel"
	PlatformAWS    = "aws"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsServerless bool
	Platform     string
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration, detected once per process
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = DetectServerless()
	})
	return serverlessConfig
}

// DetectServerless inspects the environment for a hosting platform
func DetectServerless() *ServerlessConfig {
	cfg := &ServerlessConfig{
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       GetEnv("VERCEL_REGION", os.Getenv("AWS_REGION")),
		Stage:        GetEnv("VERCEL_ENV", GetEnv("STAGE", "dev")),
	}

	switch {
	case GetEnvAsBool("VERCEL", false):
		cfg.Platform = PlatformVercel
	case cfg.FunctionName != "":
		cfg.Platform = PlatformAWS
	}
	cfg.IsServerless = cfg.Platform != ""
	return cfg
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsServerless
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(sc *ServerlessConfig, config *Config) *Config {
	if !sc.IsServerless {
		return config
	}

	// Platform log drains parse one JSON object per line
	config.Log.Format = "json"

	if config.Environment == "development" && sc.Stage == "production" {
		config.Environment = "production"
	}

	// rate limiting applies to the dev server only
	config.RateLimit.RequestsPerSecond = 0

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	// Apply serverless adaptations if needed
	config = AdaptConfigForServerless(GetServerlessConfig(), config)

	return config, nil
}
