package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulator errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors
	ErrCodeInvalidConfig
	ErrCodeInvalidAlgorithm

	// Frame table errors
	ErrCodeAllocation
	ErrCodeFrameOutOfRange

	// Trace errors
	ErrCodeInvalidOperation
	ErrCodeTraceIO
	ErrCodeTraceCompression
)

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Helper functions for common errors

func ErrInvalidConfig(op, message string) *SimError {
	return NewSimError(ErrCodeInvalidConfig, op, message, nil)
}

func ErrInvalidAlgorithm(op, name string) *SimError {
	return NewSimError(
		ErrCodeInvalidAlgorithm,
		op,
		fmt.Sprintf("invalid algorithm %q (must be fifo, lru or random)", name),
		nil,
	)
}

func ErrAllocation(op string, frames uint32) *SimError {
	return NewSimError(
		ErrCodeAllocation,
		op,
		fmt.Sprintf("cannot allocate frame table with %d frames", frames),
		nil,
	)
}

func ErrFrameOutOfRange(op string, idx, size uint32) *SimError {
	return NewSimError(
		ErrCodeFrameOutOfRange,
		op,
		fmt.Sprintf("frame %d out of range (table size %d)", idx, size),
		nil,
	)
}

func ErrInvalidOperation(op string, raw byte) *SimError {
	return NewSimError(
		ErrCodeInvalidOperation,
		op,
		fmt.Sprintf("invalid operation %q (use R or W)", raw),
		nil,
	)
}

func ErrTraceIO(op string, err error) *SimError {
	return NewSimError(ErrCodeTraceIO, op, "trace I/O failed", err)
}

func ErrTraceCompression(op string, err error) *SimError {
	return NewSimError(ErrCodeTraceCompression, op, "trace decompression failed", err)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
