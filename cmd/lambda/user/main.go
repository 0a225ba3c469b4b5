package main

import (
	"vercel-runtime/internal/config"
	"vercel-runtime/internal/logging"
	"vercel-runtime/pkg/lambda"
	"vercel-runtime/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logging.Setup(cfg)
	if err != nil {
		panic("Failed to configure logging: " + err.Error())
	}

	container = server.NewContainer(cfg, log, nil)
	log.WithField("auth_enabled", cfg.Auth.Enabled()).Info("User function initialized")
}

func main() {
	// API Gateway proxy events when deployed straight to AWS Lambda
	if config.GetServerlessConfig().Platform == config.PlatformAWS {
		lambda.StartAPIGateway(container.Handler())
		return
	}
	lambda.Start(container.Handler())
}
