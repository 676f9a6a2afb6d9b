package wave

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and setup.
var (
	// ErrUnknownWaveType indicates a wave type name that has no handler.
	ErrUnknownWaveType = errors.New("wave: unknown wave type")

	// ErrUnknownSpectrum indicates an unrecognized spectrum shape.
	ErrUnknownSpectrum = errors.New("wave: unknown spectrum type")

	// ErrUnsupportedSpectrum indicates a spectrum that was removed (Bretschneider).
	ErrUnsupportedSpectrum = errors.New("wave: unsupported spectrum type")

	// ErrUnknownDiscretization indicates an unrecognized frequency discretization.
	ErrUnknownDiscretization = errors.New("wave: unknown frequency discretization")

	// ErrMissingField indicates a field required by the selected wave type is unset.
	ErrMissingField = errors.New("wave: required field not defined")

	// ErrDirectionSpread indicates directions and spread weights of different length.
	ErrDirectionSpread = errors.New("wave: direction and spread length mismatch")

	// ErrInvalidParams indicates run parameters outside their valid range.
	ErrInvalidParams = errors.New("wave: invalid run parameters")
)

// ConfigError wraps a configuration error with the offending field.
type ConfigError struct {
	Field   string
	Type    Type
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v (%s)", e.Wrapped, e.Type)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Wrapped, e.Field, e.Type)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

func missing(t Type, field string) error {
	return &ConfigError{Field: field, Type: t, Wrapped: ErrMissingField}
}
