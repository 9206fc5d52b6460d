// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidOptionType = errors.New("invalid option type: use 'call' or 'put'")
	ErrNoConvergence     = errors.New("implied volatility did not converge")
	ErrVanishingVega     = errors.New("vega is numerically zero")
	ErrPriceOutOfBounds  = errors.New("market price violates no-arbitrage bounds")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrJournalDisabled   = errors.New("valuation journal is disabled")
)

// ParameterError represents a rejected contract or solver parameter.
type ParameterError struct {
	Field   string
	Value   float64
	Message string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s (%g): %s", e.Field, e.Value, e.Message)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NewParameterError creates a new ParameterError.
func NewParameterError(field string, value float64, message string) *ParameterError {
	return &ParameterError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConvergenceError represents a failed implied-volatility search.
// Cause is one of ErrNoConvergence, ErrVanishingVega or ErrPriceOutOfBounds,
// so callers can distinguish the failure modes with errors.Is.
type ConvergenceError struct {
	Cause      error
	Iterations int
	LastVol    float64
	LastDiff   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("implied volatility solve failed after %d iterations (last vol %.6f, residual %.4g): %v",
		e.Iterations, e.LastVol, e.LastDiff, e.Cause)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Cause
}

// NewConvergenceError creates a new ConvergenceError.
func NewConvergenceError(cause error, iterations int, lastVol, lastDiff float64) *ConvergenceError {
	return &ConvergenceError{
		Cause:      cause,
		Iterations: iterations,
		LastVol:    lastVol,
		LastDiff:   lastDiff,
	}
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

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
