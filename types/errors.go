package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorType represents the type of an error
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeEvaluator
	ErrorTypeCacheUnavailable
	ErrorTypeAnalyticsPersist
	ErrorTypeBatchItem
	ErrorTypeInternal
)

// PromptError represents an error raised while scoring or rewriting a prompt
type PromptError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *PromptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.TypeString(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.TypeString(), e.Message)
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

func (e *PromptError) TypeString() string {
	switch e.Type {
	case ErrorTypeValidation:
		return "ValidationError"
	case ErrorTypeEvaluator:
		return "EvaluatorError"
	case ErrorTypeCacheUnavailable:
		return "CacheUnavailable"
	case ErrorTypeAnalyticsPersist:
		return "AnalyticsPersistError"
	case ErrorTypeBatchItem:
		return "BatchItemError"
	case ErrorTypeInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// LoggableFields returns key/value pairs suitable for a structured logger.
func (e *PromptError) LoggableFields() []any {
	return []any{
		"error_type", e.TypeString(),
		"message", e.Message,
		"cause", e.Err,
	}
}

// NewPromptError creates a new PromptError
func NewPromptError(errType ErrorType, message string, err error) *PromptError {
	return &PromptError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err wraps a PromptError of the given type.
func IsType(err error, errType ErrorType) bool {
	var pe *PromptError
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// BatchItemError records the failure of one prompt in a batch.
type BatchItemError struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
	Err    error  `json:"-"`
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("BatchItemError (item %d): %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error {
	return e.Err
}

// MarshalJSON includes the cause as a string.
func (e *BatchItemError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Index  int    `json:"index"`
		Prompt string `json:"prompt"`
		Error  string `json:"error"`
	}{e.Index, e.Prompt, msg})
}
