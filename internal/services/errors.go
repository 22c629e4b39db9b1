package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrEmptyContent       = errors.New("message content cannot be empty")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// ValidationError describes a rejected input. Message is safe to show to
// the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// storeError maps repository failures onto the service error taxonomy.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case repository.IsUniqueViolation(err):
		return ErrConflict
	case repository.IsForeignKeyViolation(err):
		return ErrNotFound
	case repository.IsCheckViolation(err):
		return invalidf("value out of range")
	default:
		return err
	}
}
