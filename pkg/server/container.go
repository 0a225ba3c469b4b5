package server

import (
	"github.com/sirupsen/logrus"

	"vercel-runtime/internal/auth"
	"vercel-runtime/internal/config"
	"vercel-runtime/internal/handlers"
	"vercel-runtime/pkg/lambda"
)

// Container holds all function dependencies
type Container struct {
	Config      *config.Config
	Log         logrus.FieldLogger
	Users       handlers.UserStore
	Verifier    *auth.Verifier
	UserHandler *handlers.UserHandler
}

// NewContainer creates a new dependency injection container. A nil store is
// replaced with the seeded in-memory store.
func NewContainer(cfg *config.Config, log logrus.FieldLogger, users handlers.UserStore) *Container {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if users == nil {
		users = handlers.NewMemoryUserStore(handlers.SeedUsers()...)
	}

	var verifier *auth.Verifier
	if cfg.Auth.Enabled() {
		verifier = auth.NewVerifier(cfg.Auth)
	}

	return &Container{
		Config:      cfg,
		Log:         log,
		Users:       users,
		Verifier:    verifier,
		UserHandler: handlers.NewUserHandler(users, verifier, log),
	}
}

// Handler returns the function entry point
func (c *Container) Handler() lambda.HandlerFunc {
	return c.UserHandler.Handle
}
