// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// Application errors shared across packages.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict")

	// ErrSwitchInProgress is returned when a language switch is requested
	// while another switch is still in flight. The second request is never
	// issued to the server.
	ErrSwitchInProgress = errors.New("language switch already in progress")

	// ErrNoQuestions is the expected empty state of the quiz: the server has
	// no flashcards to quiz on. Informational, not a failure.
	ErrNoQuestions = errors.New("no quiz questions available")

	// ErrNoActiveQuestion is returned when an answer is submitted without a
	// loaded question.
	ErrNoActiveQuestion = errors.New("no active quiz question")

	// ErrDuplicateAnswer is returned when the identical answer string is
	// resubmitted for an already answered question. No request is issued.
	ErrDuplicateAnswer = errors.New("answer already submitted")
)

// RemoteError describes a failed call to the backend API. Status is the HTTP
// status code, or 0 when the request never produced a usable response
// (network failure, timeout, undecodable body). Message carries the
// server-supplied error string, if any.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("remote call failed (status %d): %s", e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("remote call failed: %v", e.Err)
	default:
		return fmt.Sprintf("remote call failed (status %d)", e.Status)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before a usable HTTP
// response existed.
func (e *RemoteError) Transport() bool {
	return e.Status == 0
}

// ClientError reports whether the server rejected the request (4xx).
func (e *RemoteError) ClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// UserMessage picks the message shown to the user: the server message when
// present, otherwise the transport error text, otherwise a generic fallback.
func (e *RemoteError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Request failed. Please try again."
}

// AppError is a structured error used by the stub server to build error
// responses.
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorBody is the wire shape of an error response: {"error": "..."}.
type APIErrorBody struct {
	Error string `json:"error"`
}
