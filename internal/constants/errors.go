package constants

// Error codes for operations service failures. Handlers map these to HTTP
// status codes; the messages below are what callers see.

// Lookup errors
const (
	ErrCodePilotNotFound = "PILOT_NOT_FOUND"
	ErrCodeEventNotFound = "EVENT_NOT_FOUND"
)

// Validation errors
const (
	ErrCodeMalformedTimeOff     = "MALFORMED_TIME_OFF"
	ErrCodeInvalidConstraints   = "INVALID_CONSTRAINTS"
	ErrCodeInvalidEventType     = "INVALID_EVENT_TYPE"
	ErrCodeInvalidEventStatus   = "INVALID_EVENT_STATUS"
	ErrCodeInvalidEventWindow   = "INVALID_EVENT_WINDOW"
	ErrCodeDuplicateCallSign    = "DUPLICATE_CALL_SIGN"
	ErrCodeDuplicateRequirement = "DUPLICATE_REQUIREMENT"
	ErrCodeImportRowInvalid     = "IMPORT_ROW_INVALID"
)

// Storage errors
const (
	ErrCodeStorageFailure = "STORAGE_FAILURE"
)

var opsErrorMessages = map[string]string{
	ErrCodePilotNotFound: "Pilot not found",
	ErrCodeEventNotFound: "Event not found",

	ErrCodeMalformedTimeOff:     "Pilot time-off entry could not be parsed",
	ErrCodeInvalidConstraints:   "Scheduling constraints are malformed",
	ErrCodeInvalidEventType:     "Unknown event type",
	ErrCodeInvalidEventStatus:   "Unknown event status",
	ErrCodeInvalidEventWindow:   "Event start time must precede end time",
	ErrCodeDuplicateCallSign:    "Call sign already exists",
	ErrCodeDuplicateRequirement: "Requirement name already exists",
	ErrCodeImportRowInvalid:     "Import row could not be processed",

	ErrCodeStorageFailure: "Storage operation failed",
}

// GetErrorMessage returns the human readable message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := opsErrorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred"
}
