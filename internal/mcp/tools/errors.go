package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/har2raml/internal/capture"
	"github.com/usestring/har2raml/internal/convert"
	"github.com/usestring/har2raml/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeLoadError    = "LOAD_ERROR"
	ErrCodeConvertError = "CONVERT_ERROR"
	ErrCodeNoCalls      = "NO_CALLS"
	ErrCodePowHTTPError = "POWHTTP_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrLoad wraps a failure to read a capture source.
func ErrLoad(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return logged(&CodedError{Code: ErrCodePowHTTPError, Message: apiErr.Message, Cause: err})
	case isTimeout(err):
		return logged(&CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err})
	}
	return logged(&CodedError{Code: ErrCodeLoadError, Message: "loading capture", Cause: err})
}

// ErrConvert wraps a conversion failure. Invalid jq selections are reported
// as invalid input.
func ErrConvert(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, convert.ErrNoCalls):
		return logged(&CodedError{Code: ErrCodeNoCalls, Message: "no entry matched the selection and base URI", Cause: err})
	case errors.Is(err, capture.ErrInvalidSelector):
		return logged(&CodedError{Code: ErrCodeInvalidInput, Message: "invalid select expression", Cause: err})
	}
	return logged(&CodedError{Code: ErrCodeConvertError, Message: "converting capture", Cause: err})
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func logged(coded *CodedError) *CodedError {
	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}
