// Package errors provides the error types used for configuration
// validation. All sampling operations are pure arithmetic over validated
// state, so configuration time is the only place this tool can fail.
package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid option value detected at initialization.
// It is always fatal: the process must not proceed to sampling with a
// partially validated configuration.
type ConfigError struct {
	// Option is the option name as registered on the command line.
	Option string
	// Value is the offending value as supplied by the user.
	Value interface{}
	// Reason describes the constraint that was violated.
	Reason string
	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value %v for --%s: %s: %v", e.Value, e.Option, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid value %v for --%s: %s", e.Value, e.Option, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value interface{}, reason string) *ConfigError {
	return &ConfigError{
		Option: option,
		Value:  value,
		Reason: reason,
	}
}

// WrapConfigError creates a ConfigError around an underlying cause.
func WrapConfigError(option string, value interface{}, reason string, err error) *ConfigError {
	return &ConfigError{
		Option: option,
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}

// IsConfig returns true if the error is a configuration error.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// GetConfig extracts a ConfigError from an error chain if present.
func GetConfig(err error) *ConfigError {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
