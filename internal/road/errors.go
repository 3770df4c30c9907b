package road

import (
	"errors"
	"fmt"
)

var (
	// ErrTurnAngle is returned when ArcLength/CircleRadius reaches π radians.
	ErrTurnAngle = errors.New("arc length divided by circle radius must be less than 180 degrees")

	// ErrInvalidParams is returned for non-positive or non-finite dimensions.
	ErrInvalidParams = errors.New("road dimensions must be positive and finite")
)

// ConfigError reports a generation parameter the sampler refused.
type ConfigError struct {
	Field string
	Value float64
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("road config %s=%g: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
