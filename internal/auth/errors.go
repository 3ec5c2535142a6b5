package auth

import "github.com/pkg/errors"

var (
	ErrInvalidToken         = errors.New("invalid session token")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrMissingEmail         = errors.New("session has no email")
	ErrInvalidState         = errors.New("invalid oauth state")
)
