package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Credential store errors
	ErrConflict     = fmt.Errorf("user already exists")
	ErrUnauthorized = fmt.Errorf("invalid username or password")
	ErrUserNotFound = fmt.Errorf("user not found")

	// Session errors
	ErrSessionNotFound = fmt.Errorf("session not found")

	// Device and upstream errors
	ErrCameraUnavailable  = fmt.Errorf("unable to access camera")
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
