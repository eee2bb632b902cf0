package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Schema error codes (SCHEMA_*)
const (
	SchemaMissingMCCColumn ErrorCode = "SCHEMA_001"
	SchemaMalformedRow     ErrorCode = "SCHEMA_002"
	SchemaMissingColumn    ErrorCode = "SCHEMA_003"
)

// Dataset error codes (DATASET_*)
const (
	DatasetNotLoaded  ErrorCode = "DATASET_001"
	DatasetLoadFailed ErrorCode = "DATASET_002"
	DatasetEmpty      ErrorCode = "DATASET_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral            ErrorCode = "VALIDATION_001"
	ValidationRequiredField      ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat      ErrorCode = "VALIDATION_003"
	ValidationOutOfRange         ErrorCode = "VALIDATION_004"
	ValidationInvalidDate        ErrorCode = "VALIDATION_005"
	ValidationInvalidGranularity ErrorCode = "VALIDATION_006"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_002"
	SystemConfigurationError ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Schema errors
	SchemaMissingMCCColumn: "MCC reference data must contain a merchant category code column",
	SchemaMalformedRow:     "Input row could not be parsed",
	SchemaMissingColumn:    "Input data is missing a required column",

	// Dataset errors
	DatasetNotLoaded:  "No dataset has been loaded yet",
	DatasetLoadFailed: "Dataset could not be loaded from the configured source",
	DatasetEmpty:      "Dataset contains no transactions",

	// Validation errors
	ValidationGeneral:            "Validation failed",
	ValidationRequiredField:      "Required field is missing",
	ValidationInvalidFormat:      "Invalid field format",
	ValidationOutOfRange:         "Field value is out of allowed range",
	ValidationInvalidDate:        "Invalid date format or range",
	ValidationInvalidGranularity: "Granularity must be one of: day, week, month",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
