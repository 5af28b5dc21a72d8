package physics

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every configuration failure.
var ErrConfiguration = errors.New("physics: invalid configuration")

// ConfigurationError names the offending configuration entry.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("physics: invalid configuration %s = %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configError(field string, value any, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
