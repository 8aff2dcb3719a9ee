package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy shared by all services. Handlers map these to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrProfileNotFound  = fmt.Errorf("profile %w", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	ErrEmailTaken    = fmt.Errorf("email %w", ErrConflict)
	ErrProfileExists = fmt.Errorf("profile %w", ErrConflict)

	ErrNotTaskOwner = fmt.Errorf("%w: task belongs to another user", ErrForbidden)
)

// notFound maps gorm's record-not-found to sentinel, wrapping anything else
func notFound(err error, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", action, err)
}
