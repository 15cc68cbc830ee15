package util

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the generator.
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeIO            = "IO_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details, Err: err}
}

// NewConfigurationError reports an empty or malformed reference table or setting.
func NewConfigurationError(message string, details map[string]any) error {
	return NewDomainError(CodeConfiguration, message, details, nil)
}

// NewIOError reports a failure reading or writing an output location.
func NewIOError(path string, err error) error {
	return NewDomainError(CodeIO, fmt.Sprintf("io failure on %s", path), map[string]any{"path": path}, err)
}

// NewInternalError wraps an unclassified failure.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err)
}

// IsConfigurationError reports whether err carries CONFIGURATION_ERROR.
func IsConfigurationError(err error) bool {
	return hasCode(err, CodeConfiguration)
}

// IsIOError reports whether err carries IO_ERROR.
func IsIOError(err error) bool {
	return hasCode(err, CodeIO)
}

func hasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
