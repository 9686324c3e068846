package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check these with errors.Is(); the API layer maps
// them to HTTP status codes.
var (
	// ErrInvalidCategory indicates a task referenced a category that does
	// not exist or belongs to a different user. The write is rejected
	// entirely; no partial save happens.
	ErrInvalidCategory = errors.New("invalid category for this user")

	// ErrInvalidCredentials indicates a failed username/password login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
