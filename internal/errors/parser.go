package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a safe code + message pair for a storage error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseStorageError converts a storage-layer error into a user-safe code and
// message. Internal detail (SQL, constraint names) is never leaked.
func ParseStorageError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: context + " not found",
		}
	}

	errStr := strings.ToLower(err.Error())

	// Postgres unique constraint violation (23505): the map_settings shop
	// key is unique, so this means two sessions raced an upsert.
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The record was modified concurrently. Please retry",
		}
	}

	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "connection reset") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is temporarily unavailable",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: "A storage error occurred",
	}
}

func notFoundCode(context string) string {
	if strings.Contains(strings.ToLower(context), "pin") {
		return PinNotFound
	}
	return InternalDatabaseError
}
