package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure. Every per-request error is turned
// into a structured error reply at the handler boundary; the kind only
// matters for logging and tests, the message is the wire contract.
type Kind int

const (
	KindValidation Kind = iota
	KindProtocol
	KindNotFound
	KindIO
)

// RequestError is a failure whose message is sent back verbatim on the
// bus.
type RequestError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Cause }

var (
	ErrInvalidAction   = &RequestError{Kind: KindValidation, Message: "Invalid or missing action"}
	ErrInvalidQuality  = &RequestError{Kind: KindValidation, Message: "Invalid quality."}
	ErrInvalidSize     = &RequestError{Kind: KindValidation, Message: "Invalid size."}
	ErrInvalidOutputs  = &RequestError{Kind: KindValidation, Message: "Invalid outputs files."}
	ErrCropOutOfBounds = &RequestError{Kind: KindValidation, Message: "Source image too small for crop."}
	ErrResizeFailed    = &RequestError{Kind: KindIO, Message: "Unable to resize image."}
)

// ErrInvalidPath marks a locator without a scheme delimiter.
func ErrInvalidPath(locator string) *RequestError {
	return &RequestError{Kind: KindProtocol, Message: fmt.Sprintf("Invalid path : %s", locator)}
}

// ErrInvalidProtocol marks a locator whose scheme has no registered provider.
func ErrInvalidProtocol(scheme string) *RequestError {
	return &RequestError{Kind: KindProtocol, Message: fmt.Sprintf("Invalid file protocol : %s", scheme)}
}

// ErrNotFound marks an unreadable source file.
func ErrNotFound(cause error) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: "Input file not found.", Cause: cause}
}

// ErrProcessing marks a decode or encode failure.
func ErrProcessing(cause error) *RequestError {
	return &RequestError{Kind: KindIO, Message: "Error processing image.", Cause: cause}
}

// ErrWriteFailed marks a destination write failure.
func ErrWriteFailed(cause error) *RequestError {
	return &RequestError{Kind: KindIO, Message: "Error writing file.", Cause: cause}
}

// Message extracts the wire message for err.
func Message(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Message
	}
	return "Error processing image."
}
