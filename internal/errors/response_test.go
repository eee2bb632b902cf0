package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

// TestNewErrorResponse_BasicUsage tests creating a basic error response
func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(DatasetNotLoaded, s.traceID)

	s.NotNil(response)
	s.Equal("DATASET_001", response.Error.Code)
	s.Equal("No dataset has been loaded yet", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

// TestNewErrorResponse_WithDetails tests creating error response with details
func (s *ResponseTestSuite) TestNewErrorResponse_WithDetails() {
	details := []string{"tried: merchant_category_code, mcc_code, mcc, mcc_cd"}
	response := NewErrorResponse(SchemaMissingMCCColumn, s.traceID, WithDetails(details...))

	s.Equal("SCHEMA_001", response.Error.Code)
	s.Equal(details, response.Error.Details)
}

// TestNewErrorResponse_WithCustomMessage tests overriding the default message
func (s *ResponseTestSuite) TestNewErrorResponse_WithCustomMessage() {
	customMessage := "No dataset loaded"
	response := NewErrorResponse(SystemServiceUnavailable, s.traceID, WithMessage(customMessage))

	s.Equal("SYSTEM_002", response.Error.Code)
	s.Equal(customMessage, response.Error.Message)
}

// TestNewValidationError tests creating validation error from field map
func (s *ResponseTestSuite) TestNewValidationError() {
	fieldErrors := map[string]string{"granularity": "must be one of day, week, month"}
	response := NewValidationError(fieldErrors, s.traceID)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Require().Len(response.Error.Details, 1)
	s.Equal("granularity: must be one of day, week, month", response.Error.Details[0])
}

// TestWrapSystemError tests wrapping an internal error
func (s *ResponseTestSuite) TestWrapSystemError() {
	internal := errors.New("connection reset")
	response, err := WrapSystemError(internal, s.traceID)

	s.Equal("SYSTEM_001", response.Error.Code)
	// The internal error is returned for logging, never serialized.
	s.ErrorIs(err, internal)
	s.NotContains(response.Error.Message, "connection reset")
}

// TestToJSON tests the JSON serialization shape
func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(ValidationInvalidDate, s.traceID)

	data, err := response.ToJSON()
	s.Require().NoError(err)

	var decoded map[string]map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("VALIDATION_005", decoded["error"]["code"])
	s.Equal(s.traceID, decoded["error"]["trace_id"])
}

// TestGetHTTPStatus tests the error code to HTTP status mapping
func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected int
	}{
		{"Validation General", ValidationGeneral, http.StatusBadRequest},
		{"Validation Invalid Date", ValidationInvalidDate, http.StatusBadRequest},
		{"Validation Invalid Granularity", ValidationInvalidGranularity, http.StatusBadRequest},
		{"Dataset Not Loaded", DatasetNotLoaded, http.StatusNotFound},
		{"Schema Missing MCC Column", SchemaMissingMCCColumn, http.StatusUnprocessableEntity},
		{"Dataset Load Failed", DatasetLoadFailed, http.StatusUnprocessableEntity},
		{"Dataset Empty", DatasetEmpty, http.StatusUnprocessableEntity},
		{"Rate Limit Exceeded", SystemRateLimitExceeded, http.StatusTooManyRequests},
		{"Service Unavailable", SystemServiceUnavailable, http.StatusServiceUnavailable},
		{"Internal Error", SystemInternalError, http.StatusInternalServerError},
		{"Unknown Code", "UNKNOWN_999", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

// TestIsClientError tests client error classification
func (s *ResponseTestSuite) TestIsClientError() {
	s.True(NewErrorResponse(ValidationGeneral, s.traceID).IsClientError())
	s.True(NewErrorResponse(DatasetNotLoaded, s.traceID).IsClientError())
	s.False(NewErrorResponse(SystemInternalError, s.traceID).IsClientError())
}

// TestIsServerError tests server error classification
func (s *ResponseTestSuite) TestIsServerError() {
	s.True(NewErrorResponse(SystemInternalError, s.traceID).IsServerError())
	s.True(NewErrorResponse(SystemServiceUnavailable, s.traceID).IsServerError())
	s.False(NewErrorResponse(ValidationGeneral, s.traceID).IsServerError())
}
