// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler normalizes errors and writes them as machine-readable HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorResponse is the wire shape for failed requests. Error carries the short
// form-facing code the submission UI keys its field messages on; Code is the
// full internal code.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    ErrorCode              `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// shortCodes maps internal codes to the compact codes the form client expects.
var shortCodes = map[ErrorCode]string{
	ErrCodeDuplicateEmail:              "email_exists",
	ErrCodeDuplicateDiscordID:          "discord_exists",
	ErrCodeApplicationNotFound:         "not_found",
	ErrCodeApplicationValidationFailed: "validation_failed",
	ErrCodeUnauthorized:                "unauthorized",
	ErrCodeExportFormatInvalid:         "invalid_format",
}

func httpStatus(code ErrorCode) int {
	switch code {
	case ErrCodeDuplicateEmail, ErrCodeDuplicateDiscordID,
		ErrCodeApplicationValidationFailed, ErrCodeExportFormatInvalid:
		return http.StatusBadRequest
	case ErrCodeApplicationNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTP logs err and writes the mapped status plus JSON body. Expected
// outcomes (duplicates, not-found, validation) log at warn; everything else
// logs at error and is reported as a generic failure.
func (h *ErrorHandler) WriteHTTP(w http.ResponseWriter, err error) {
	stdErr := h.normalizeError(err)
	status := httpStatus(stdErr.Code)

	fields := map[string]interface{}{
		"errorCode": stdErr.Code,
		"details":   stdErr.Details,
		"status":    status,
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	resp := ErrorResponse{
		Error: stdErr.Code.short(),
		Code:  stdErr.Code,
	}
	if status < http.StatusInternalServerError {
		resp.Details = stdErr.Metadata
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (c ErrorCode) short() string {
	if s, ok := shortCodes[c]; ok {
		return s
	}
	return "internal_error"
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
