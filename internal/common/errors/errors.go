// Package errors provides standardized error handling for the intake service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDuplicateEmail     ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateDiscordID ErrorCode = "DUPLICATE_DISCORD_ID"

	ErrCodeApplicationNotFound         ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeRecordCorrupt      ErrorCode = "RECORD_CORRUPT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeExportFormatInvalid    ErrorCode = "EXPORT_FORMAT_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewDuplicateEmailError creates a non-retryable duplicate submission error.
func NewDuplicateEmailError(normalizedEmail string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateEmail,
		Message:   "An application with this email already exists",
		Details:   fmt.Sprintf("email: %s", normalizedEmail),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateDiscordIDError creates a non-retryable duplicate submission error.
func NewDuplicateDiscordIDError(normalizedID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateDiscordID,
		Message:   "An application with this Discord ID already exists",
		Details:   fmt.Sprintf("discordId: %s", normalizedID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationNotFoundError creates a non-retryable not-found error.
func NewApplicationNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error. Field-level
// results travel in Metadata so the presentation layer can render per-field messages.
func NewValidationFailedError(fieldErrors []map[string]interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   "Application data failed validation",
		Retryable: false,
		Metadata:  map[string]interface{}{"fieldErrors": fieldErrors},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a non-retryable authorization error.
func NewUnauthorizedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Authentication required",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError creates a retryable storage error.
func NewStorageUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Backing store unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordCorruptError marks a single stored record that could not be parsed.
// Isolated per record; list operations drop the record instead of failing.
func NewRecordCorruptError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordCorrupt,
		Message:   "Stored record could not be parsed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error. Callers
// log it and move on; a committed create is never rolled back for this.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFormatInvalidError creates a non-retryable export error.
func NewExportFormatInvalidError(format string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFormatInvalid,
		Message:   "Unsupported export format",
		Details:   fmt.Sprintf("format: %s", format),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
