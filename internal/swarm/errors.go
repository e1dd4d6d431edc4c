package swarm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a simulation constant outside its valid range.
	ErrInvalidConfig = errors.New("swarm: invalid configuration")

	// ErrInvalidPointer indicates a pointer position with NaN or Inf coordinates.
	ErrInvalidPointer = errors.New("swarm: invalid pointer position (NaN or Inf)")
)

// ConfigError names the offending option.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
