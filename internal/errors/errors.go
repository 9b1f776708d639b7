// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrTradeNotFound   = errors.New("trade not found")
	ErrMalformedBackup = errors.New("malformed backup file")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrNotConfirmed    = errors.New("confirmation declined")
)

// ValidationError represents a validation error on user-supplied input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// BackupError represents an error while importing or exporting a backup.
type BackupError struct {
	Path string
	Op   string // "import" or "export"
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// NewBackupError creates a new BackupError.
func NewBackupError(op, path string, err error) *BackupError {
	return &BackupError{Op: op, Path: path, Err: err}
}

// StoreError represents an error from a store mutation.
type StoreError struct {
	Entity string
	ID     string
	Op     string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s %s] %s: %v", e.Entity, e.ID, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, id, op string, err error) *StoreError {
	return &StoreError{Entity: entity, ID: id, Op: op, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
