// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-mem.

package api

import "fmt"

// Sentinel errors used across the library.
//
// Capacity exhaustion (ErrOutOfMemory, ErrBatchFull, ErrBufferFull) is
// recoverable: the caller may shrink the request, flush, or switch
// allocators. ErrItemTooLarge and ErrUnknownKind are permanent for the
// offending input. ErrInvalidHandle and ErrForeignBlock indicate a
// contract violation caught by handle validation.
var (
	ErrOutOfMemory     = fmt.Errorf("arena capacity exhausted")
	ErrBatchFull       = fmt.Errorf("batch is at capacity")
	ErrBufferFull      = fmt.Errorf("ring buffer has insufficient free space")
	ErrItemTooLarge    = fmt.Errorf("item exceeds ring buffer capacity")
	ErrUnknownKind     = fmt.Errorf("no handler registered for message kind")
	ErrInvalidHandle   = fmt.Errorf("handle is stale, freed, or out of range")
	ErrForeignBlock    = fmt.Errorf("block does not belong to this pool")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrClosed          = fmt.Errorf("resource is closed")
)

// ErrorCode represents specific error conditions in the library.
// Every code maps onto one of the sentinels above, so a structured
// Error matches its sentinel under errors.Is.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfMemory
	ErrCodeBatchFull
	ErrCodeBufferFull
	ErrCodeItemTooLarge
	ErrCodeUnknownKind
	ErrCodeInvalidHandle
	ErrCodeForeignBlock
	ErrCodeClosed
)

// sentinel returns the sentinel error corresponding to the code.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeOutOfMemory:
		return ErrOutOfMemory
	case ErrCodeBatchFull:
		return ErrBatchFull
	case ErrCodeBufferFull:
		return ErrBufferFull
	case ErrCodeItemTooLarge:
		return ErrItemTooLarge
	case ErrCodeUnknownKind:
		return ErrUnknownKind
	case ErrCodeInvalidHandle:
		return ErrInvalidHandle
	case ErrCodeForeignBlock:
		return ErrForeignBlock
	case ErrCodeClosed:
		return ErrClosed
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap resolves the code's sentinel so errors.Is sees through the
// structured form.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
