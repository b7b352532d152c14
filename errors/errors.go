// Package errors provides standardized error values for the chatbot's infrastructure boundaries.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeKnowledgeLoadFailed     ErrorCode = "KNOWLEDGE_LOAD_FAILED"
	ErrCodeStorageWriteFailed      ErrorCode = "STORAGE_WRITE_FAILED"
	ErrCodeStorageConnectionFailed ErrorCode = "STORAGE_CONNECTION_FAILED"
	ErrCodeSessionStoreFailed      ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeFlowComplete            ErrorCode = "FLOW_COMPLETE"
	ErrCodeInvalidRequest          ErrorCode = "INVALID_REQUEST"
	ErrCodeWhatsAppSendFailed      ErrorCode = "WHATSAPP_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any StandardError carrying the same code, so callers can compare against
// the sentinel values below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrKnowledgeLoad     = &StandardError{Code: ErrCodeKnowledgeLoadFailed}
	ErrStorageWrite      = &StandardError{Code: ErrCodeStorageWriteFailed}
	ErrStorageConnection = &StandardError{Code: ErrCodeStorageConnectionFailed}
	ErrSessionStore      = &StandardError{Code: ErrCodeSessionStoreFailed}
	ErrFlowComplete      = &StandardError{Code: ErrCodeFlowComplete}
	ErrInvalidRequest    = &StandardError{Code: ErrCodeInvalidRequest}
	ErrWhatsAppSend      = &StandardError{Code: ErrCodeWhatsAppSendFailed}
)

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewKnowledgeLoadError is returned when keyword or response tables cannot be built.
func NewKnowledgeLoadError(source string, err error) *StandardError {
	return newError(ErrCodeKnowledgeLoadFailed, "Failed to load knowledge tables",
		fmt.Sprintf("source: %s, error: %s", source, detailsOf(err)), false, err)
}

// NewStorageWriteError creates a retryable storage error.
func NewStorageWriteError(collection string, err error) *StandardError {
	return newError(ErrCodeStorageWriteFailed, "Failed to store record",
		fmt.Sprintf("collection: %s, error: %s", collection, detailsOf(err)), true, err)
}

// NewStorageConnectionError creates a retryable connection error.
func NewStorageConnectionError(err error) *StandardError {
	return newError(ErrCodeStorageConnectionFailed, "Storage connection error", detailsOf(err), true, err)
}

// NewSessionStoreError wraps failures of the follow-up session store.
func NewSessionStoreError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store error",
		fmt.Sprintf("op: %s, error: %s", op, detailsOf(err)), true, err)
}

// NewFlowCompleteError is returned when an answer is submitted to a finished flow.
func NewFlowCompleteError(flow string) *StandardError {
	return newError(ErrCodeFlowComplete, "Follow-up flow already complete",
		fmt.Sprintf("flow: %s", flow), false, nil)
}

// NewInvalidRequestError creates a non-retryable validation error.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, false, nil)
}

// NewWhatsAppSendError wraps Cloud API delivery failures.
func NewWhatsAppSendError(err error) *StandardError {
	return newError(ErrCodeWhatsAppSendFailed, "Failed to send WhatsApp message", detailsOf(err), true, err)
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Retryable
	}
	return false
}
