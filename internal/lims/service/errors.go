package service

import "errors"

var (
	// ErrLogCompleted rejects writes to a completed inspection log.
	ErrLogCompleted = errors.New("inspection log is completed")
	// ErrNoInspectionLog rejects report generation before any inspection data exists.
	ErrNoInspectionLog = errors.New("assignment has no inspection log")
	// ErrInvalidTransition rejects a status move outside the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a refresh token is expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
)
