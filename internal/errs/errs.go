package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType classifies a run failure for callers that map it to a status.
type ErrorType string

const (
	TypeNavigation ErrorType = "navigation"
	TypeSession    ErrorType = "session"
	TypeCooldown   ErrorType = "cooldown"
	TypeStorage    ErrorType = "storage"
	TypeValidation ErrorType = "validation"
	TypeConfig     ErrorType = "config"
	TypeNotFound   ErrorType = "not_found"
	TypeUnknown    ErrorType = "unknown"
)

// RunError is a failure tied to one stage of a scrape run.
type RunError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

func (e *RunError) Unwrap() error { return e.Err }

// Retryable reports whether a background task should be retried.
func (e *RunError) Retryable() bool {
	switch e.Type {
	case TypeNavigation, TypeStorage:
		return true
	default:
		return false
	}
}

func New(t ErrorType, stage, message string, err error) *RunError {
	return &RunError{Type: t, Stage: stage, Message: message, Err: err, Time: time.Now()}
}

func NewNavigation(stage, message string, err error) *RunError {
	return New(TypeNavigation, stage, message, err)
}

func NewSession(message string, err error) *RunError {
	return New(TypeSession, "session", message, err)
}

func NewCooldown(remaining time.Duration) *RunError {
	return New(TypeCooldown, "scrape", fmt.Sprintf("cooling down for %v", remaining.Round(time.Second)), nil)
}

func NewStorage(stage, message string, err error) *RunError {
	return New(TypeStorage, stage, message, err)
}

func NewValidation(stage, message string) *RunError {
	return New(TypeValidation, stage, message, nil)
}

func NewConfig(message string, err error) *RunError {
	return New(TypeConfig, "config", message, err)
}

func NewNotFound(stage, message string) *RunError {
	return New(TypeNotFound, stage, message, nil)
}

// TypeOf returns the type of the first RunError in err's chain.
func TypeOf(err error) ErrorType {
	var re *RunError
	if errors.As(err, &re) {
		return re.Type
	}
	return TypeUnknown
}

// IsRetryable reports whether err carries a retryable RunError.
func IsRetryable(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	return false
}

// HTTPStatus maps err to the response status used by the API handlers.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case TypeSession:
		return http.StatusUnauthorized
	case TypeNavigation:
		return http.StatusBadGateway
	case TypeCooldown:
		return http.StatusTooManyRequests
	case TypeValidation, TypeConfig:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
