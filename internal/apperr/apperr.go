// Package apperr defines the error kinds shared by the prediction engines
// and the auth gate. Engines wrap collaborator failures into one of these
// kinds with contextual messages; the HTTP layer maps kinds to status codes.
package apperr

import "errors"

var (
	// ErrInvalidInput marks user-correctable request data problems.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable marks an engine whose model collaborator failed to
	// initialize. It persists until restart.
	ErrUnavailable = errors.New("service unavailable")
	// ErrInvalidImage marks an upload that cannot be decoded as an image.
	ErrInvalidImage = errors.New("invalid image")
	// ErrIndexOutOfRange marks classifier output inconsistent with the
	// disease taxonomy. Reported generically to clients.
	ErrIndexOutOfRange = errors.New("class index out of range")
	// ErrAuthentication marks bad credentials, reported uniformly so the
	// response never reveals which factor failed.
	ErrAuthentication = errors.New("authentication failed")
	// ErrInvalidToken marks an expired or malformed session token.
	ErrInvalidToken = errors.New("invalid token")
)
