package usecase

import "errors"

// ErrUnauthenticated is returned by mutations invoked without a user
// session. Reads never return it; they degrade to empty results.
var ErrUnauthenticated = errors.New("not authenticated")

// ValidationError carries the first violated field rule. It is raised
// before any store call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationFailed(message string) error {
	return &ValidationError{Message: message}
}
