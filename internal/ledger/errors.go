package ledger

import (
	"errors"
	"fmt"

	"github.com/mxbcash/mxbcash/internal/store"
)

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError is returned when a write would break an invariant, for
// example splits that do not sum to zero. Detail carries enough information
// to reconstruct the failing invariant.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// ConflictError is returned when a delete is blocked by existing children or
// referencing splits, or when a unique key collides.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return e.Detail
}

// ConfigurationError is returned for bad caller configuration such as an
// unknown reporting currency mnemonic.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return e.Detail
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}

// asNotFound translates the store's sentinel into the typed taxonomy error.
func asNotFound(err error, entity string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
