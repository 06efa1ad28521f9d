package models

import "net/http"

// ErrorResponse describes a failure with a status code and a message.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse creates a new error with a status code and a message.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// NewValidationError reports malformed or missing input fields. Rejected
// before any state change; retrying without fixing the input is pointless.
func NewValidationError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, message)
}

// NewConflict reports an operation that is not valid for the current
// lifecycle state, e.g. bidding on a closed announcement.
func NewConflict(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, message)
}

// NewInvalidReference reports an id that does not resolve or does not belong
// to the claimed parent.
func NewInvalidReference(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, message)
}

// NewDependencyFailure reports an unavailable store or collaborator.
func NewDependencyFailure(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadGateway, message)
}
