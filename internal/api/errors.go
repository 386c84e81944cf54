package api

import (
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/services"
)

// handleOpsError maps service errors to appropriate HTTP responses
func handleOpsError(w http.ResponseWriter, initTime time.Time, err error) {
	if opsErr, ok := err.(*services.OpsError); ok {
		statusCode := mapErrorCodeToHTTPStatus(opsErr.Code)
		message := opsErr.Message
		if message == "" {
			message = constants.GetErrorMessage(opsErr.Code)
		}

		common.RespondError(w, initTime, err, message, statusCode)
		return
	}

	// Default to internal server error for unknown errors
	common.RespondError(w, initTime, err, "An unexpected error occurred", http.StatusInternalServerError)
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(errorCode string) int {
	switch errorCode {
	// 404 Not Found - Resource doesn't exist
	case constants.ErrCodePilotNotFound:
		return http.StatusNotFound
	case constants.ErrCodeEventNotFound:
		return http.StatusNotFound

	// 400 Bad Request - Client errors
	case constants.ErrCodeMalformedTimeOff:
		return http.StatusBadRequest
	case constants.ErrCodeInvalidConstraints:
		return http.StatusBadRequest
	case constants.ErrCodeInvalidEventType:
		return http.StatusBadRequest
	case constants.ErrCodeInvalidEventStatus:
		return http.StatusBadRequest
	case constants.ErrCodeInvalidEventWindow:
		return http.StatusBadRequest
	case constants.ErrCodeImportRowInvalid:
		return http.StatusBadRequest

	// 409 Conflict - Uniqueness violations
	case constants.ErrCodeDuplicateCallSign:
		return http.StatusConflict
	case constants.ErrCodeDuplicateRequirement:
		return http.StatusConflict

	// 500 Internal Server Error - Storage errors (default)
	case constants.ErrCodeStorageFailure:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
