package bencode

import (
	"go.dedis.ch/benc/encoding"
	"golang.org/x/xerrors"
)

// ErrorKind is the tag of a serialization error.
type ErrorKind int

const (
	// EncodingFailure means the encoder rejected an operation.
	EncodingFailure ErrorKind = iota
	// MessageFailure means a value reported an error through the Custom
	// callback of the serializer.
	MessageFailure
)

// Error is the error returned by the bencode serializer. It is either the
// failure of the underlying encoder or a message built by a value.
type Error struct {
	kind    ErrorKind
	message string
	source  error
}

func newEncodingError(source error) *Error {
	return &Error{
		kind:   EncodingFailure,
		source: source,
	}
}

// newValueError tags an error that a value returned without going through
// Custom.
func newValueError(source error) *Error {
	return &Error{
		kind:    MessageFailure,
		message: source.Error(),
		source:  source,
	}
}

func newMessageError(message string) *Error {
	return &Error{
		kind:    MessageFailure,
		message: message,
	}
}

// Kind returns the tag of the error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Error implements error. An encoding failure includes the description of the
// encoder error.
func (e *Error) Error() string {
	if e.kind == EncodingFailure {
		return "encoding failed: " + e.source.Error()
	}

	return e.message
}

// Unwrap returns the encoder error or the error reported by a value, and nil
// for a message built with Custom.
func (e *Error) Unwrap() error {
	return e.source
}

// wrapError tags the errors coming from the encoder. Errors that are already
// tagged, or that do not come from the encoder, are returned unchanged.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var tagged *Error
	if xerrors.As(err, &tagged) {
		return err
	}

	var encErr encoding.Error
	if xerrors.As(err, &encErr) {
		return newEncodingError(err)
	}

	return err
}

// tagError makes sure the error returned to the caller is tagged. Errors that
// are neither tagged nor coming from the encoder are reported by a value.
func tagError(err error) error {
	err = wrapError(err)
	if err == nil {
		return nil
	}

	var tagged *Error
	if xerrors.As(err, &tagged) {
		return err
	}

	return newValueError(err)
}
