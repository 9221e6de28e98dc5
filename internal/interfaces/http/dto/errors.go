package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// Resource errors. A missing invoice and someone else's invoice
	// both surface as NOT_FOUND.
	"NOT_FOUND":      http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"EMAIL_TAKEN": http.StatusConflict,

	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	// Lifecycle guard violations. The request was well formed but the
	// invoice's current status forbids the transition.
	"NOT_YET_SENT":     http.StatusUnprocessableEntity,
	"ALREADY_ACCEPTED": http.StatusUnprocessableEntity,

	// Input errors
	"BAD_REQUEST": http.StatusBadRequest,
	"NO_ITEMS":    http.StatusBadRequest,

	// Server-side failures
	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"NUMBER_EXHAUSTED":    http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes (INVALID_*) map to 400; anything unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
