// Package apperr defines the error taxonomy shared by the HTTP layer and
// outbound API clients. Every failure is normalized into a ParsedError with a
// machine-readable code and a retryable flag.
package apperr

import (
	"fmt"
	"net/http"
	"time"
)

type Code string

const (
	CodeAuthRequired     Code = "AUTH_REQUIRED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRateLimited      Code = "RATE_LIMITED"
	CodeTimeout          Code = "TIMEOUT"
	CodeNetworkError     Code = "NETWORK_ERROR"
	CodeServiceUnavail   Code = "SERVICE_UNAVAILABLE"
	CodeExternalService  Code = "EXTERNAL_SERVICE_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// ParsedError is the normalized representation of any failure. It is built
// fresh per failure and never persisted.
type ParsedError struct {
	Code       Code
	Message    string
	Retryable  bool
	RetryAfter time.Duration // zero when the upstream gave no pacing hint
}

func (e *ParsedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a ParsedError with the retryability implied by its code.
func New(code Code, message string) *ParsedError {
	return &ParsedError{
		Code:      code,
		Message:   message,
		Retryable: isRetryable(code),
	}
}

func isRetryable(code Code) bool {
	switch code {
	case CodeRateLimited, CodeTimeout, CodeNetworkError, CodeServiceUnavail, CodeExternalService:
		return true
	}
	return false
}

// FromStatus maps an HTTP status code to the taxonomy.
func FromStatus(status int, message string) *ParsedError {
	var code Code
	switch {
	case status == http.StatusBadRequest:
		code = CodeValidationFailed
	case status == http.StatusUnauthorized:
		code = CodeAuthRequired
	case status == http.StatusForbidden:
		code = CodeForbidden
	case status == http.StatusNotFound:
		code = CodeNotFound
	case status == http.StatusRequestTimeout:
		code = CodeTimeout
	case status == http.StatusTooManyRequests:
		code = CodeRateLimited
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway || status == http.StatusGatewayTimeout:
		code = CodeServiceUnavail
	case status >= 500:
		code = CodeInternal
	default:
		code = CodeExternalService
	}
	e := New(code, message)
	// A 5xx from an upstream is worth one more try even though our own
	// INTERNAL_ERROR responses are terminal.
	if status >= 500 {
		e.Retryable = true
	}
	return e
}

// StatusFor maps a taxonomy code back to the HTTP status we respond with.
func StatusFor(code Code) int {
	switch code {
	case CodeAuthRequired:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeServiceUnavail, CodeExternalService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
