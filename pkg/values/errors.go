package values

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScale is returned when a decimal has more fractional digits
	// than the target unit allows.
	ErrInvalidScale = errors.New("invalid decimal scale")

	// ErrInvalidDecimal is returned when text cannot be parsed as a decimal.
	ErrInvalidDecimal = errors.New("invalid decimal")

	// ErrOverflow is returned when a value does not fit the unsigned 64-bit
	// wire representation.
	ErrOverflow = errors.New("value out of wire range")
)

// ScaleError reports an input whose precision exceeds the unit's scale.
type ScaleError struct {
	Input string
	Scale int32
	Max   int32
}

// Error implements the error interface.
func (e *ScaleError) Error() string {
	return fmt.Sprintf("invalid decimals in %s: scale %d, only %d allowed", e.Input, e.Scale, e.Max)
}

// Is reports ErrInvalidScale as a match so callers can use errors.Is.
func (e *ScaleError) Is(target error) bool {
	return target == ErrInvalidScale
}
