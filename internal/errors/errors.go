package errors

import (
	"fmt"
	"time"
)

// Error types for the codescope analysis engine
type ErrorType string

const (
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeSupplier ErrorType = "supplier"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// ParseError represents a per-file parse failure. It is recoverable: the
// engine converts it into a parse_error issue and continues with the
// remaining files.
type ParseError struct {
	Type       ErrorType
	FilePath   string
	Language   string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(path, language string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		FilePath:   path,
		Language:   language,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for %s (%s): %v", e.FilePath, e.Language, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// SupplierError represents a failure while collecting project files. An empty
// or unreadable supplier input is the engine's only fatal condition.
type SupplierError struct {
	Type       ErrorType
	Root       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewSupplierError creates a new supplier error
func NewSupplierError(op, root string, err error) *SupplierError {
	return &SupplierError{
		Type:       ErrorTypeSupplier,
		Root:       root,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SupplierError) Error() string {
	return fmt.Sprintf("supplier %s failed for %s: %v", e.Operation, e.Root, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SupplierError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, filtering out nil entries
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
