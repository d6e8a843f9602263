package domain

import "errors"

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can map it to a status code with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("access denied")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrServiceUnavailable = errors.New("service unavailable")
)

var (
	ErrUserNotFound   = kindError(ErrNotFound, "user not found")
	ErrStoreNotFound  = kindError(ErrNotFound, "store not found")
	ErrRatingNotFound = kindError(ErrNotFound, "rating not found")

	ErrUserExists  = kindError(ErrConflict, "email already registered")
	ErrStoreExists = kindError(ErrConflict, "store with this email already exists")

	ErrInvalidCredentials = kindError(ErrUnauthenticated, "invalid credentials")
	ErrTokenExpired       = kindError(ErrUnauthenticated, "token expired")
	ErrTokenMalformed     = kindError(ErrUnauthenticated, "token malformed")

	ErrInvalidRating = &ValidationError{Problems: []string{"rating must be an integer between 1 and 5"}}
	ErrInvalidID     = &ValidationError{Problems: []string{"id is not valid"}}
)

type kindErr struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &kindErr{kind: kind, msg: msg}
}

func (e *kindErr) Error() string { return e.msg }
func (e *kindErr) Unwrap() error { return e.kind }
