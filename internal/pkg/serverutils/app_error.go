package serverutils

import (
	"fmt"
	"time"

	"quiltdex-be/pkg/apperr"
)

// AppError is the error type controllers and services return when a request
// must fail with a specific machine-readable code. Anything else that escapes
// a handler becomes a generic 500.
type AppError struct {
	Code       apperr.Code
	Message    string
	RetryAfter time.Duration // only set for RATE_LIMITED
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code apperr.Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ValidationError(message string) *AppError {
	return &AppError{Code: apperr.CodeValidationFailed, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Code: apperr.CodeNotFound, Message: message}
}

func RateLimitError(retryAfter time.Duration) *AppError {
	secs := int(retryAfter / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &AppError{
		Code:       apperr.CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %d seconds.", secs),
		RetryAfter: time.Duration(secs) * time.Second,
	}
}
