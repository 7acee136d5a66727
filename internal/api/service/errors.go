package service

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// services wrap them with %w to attach a specific message.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrInvalidToken       = errors.New("invalid or expired token")
)
