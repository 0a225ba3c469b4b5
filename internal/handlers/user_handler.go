package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"vercel-runtime/internal/auth"
	"vercel-runtime/pkg/lambda"
)

// UserPath is the only path served by the user function
const UserPath = "/api/user"

// UserHandler serves GET /api/user?id=<id>
type UserHandler struct {
	users    UserStore
	verifier *auth.Verifier
	log      logrus.FieldLogger
}

// NewUserHandler creates a user handler. A nil verifier disables
// authentication and a nil log falls back to the standard logger.
func NewUserHandler(users UserStore, verifier *auth.Verifier, log logrus.FieldLogger) *UserHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UserHandler{
		users:    users,
		verifier: verifier,
		log:      log,
	}
}

// Handle looks up the user named by the id query parameter
func (h *UserHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	log := lambda.LoggerFrom(ctx, h.log)

	if req.Path != UserPath {
		return lambda.EndpointNotFound(), nil
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return lambda.BadRequest("Method not allowed"), nil
	}

	if h.verifier != nil {
		claims, err := h.verifier.VerifyAuthorization(req.Header("Authorization"))
		if err != nil {
			log.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  req.Path,
			}).Warn("Token validation failed")
			return lambda.Unauthorized(), nil
		}
		log.WithFields(logrus.Fields{
			"user_id": claims.UserID,
			"path":    req.Path,
		}).Debug("User authenticated successfully")
	}

	id, ok := req.QueryParam("id")
	if !ok || id == "" {
		return lambda.BadRequest("Invalid query string"), nil
	}

	user, err := h.users.FindUser(ctx, id)
	switch {
	case isNotFoundError(err):
		return lambda.NotFound(), nil
	case err != nil:
		return lambda.InternalServerErrorWithLogger(log, err), nil
	}

	return lambda.Success(user)
}
