package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"vercel-runtime/internal/config"
)

// Configure applies the log level and format from cfg to logger
func Configure(logger *logrus.Logger, cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logger.SetOutput(os.Stdout)
	return nil
}

// Setup configures the standard logger and tags it with the deployment mode
func Setup(cfg *config.Config) (*logrus.Entry, error) {
	if err := Configure(logrus.StandardLogger(), cfg.Log); err != nil {
		return nil, err
	}

	sc := config.GetServerlessConfig()
	return logrus.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"mode":        config.GetDeploymentMode(),
		"platform":    sc.Platform,
	}), nil
}
