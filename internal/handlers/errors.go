package handlers

import "errors"

// ErrUserNotFound is returned by a UserStore when no user has the requested id
var ErrUserNotFound = errors.New("user not found")

// isNotFoundError checks if an error reports a missing record
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
