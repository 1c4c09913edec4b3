package services

import (
	"errors"
)

// ErrorKind classifies a failed import or delete. Each kind maps to one
// localized user-facing message.
type ErrorKind string

const (
	KindMissingFile       ErrorKind = "missing_file"
	KindFileTooLarge      ErrorKind = "file_too_large"
	KindInvalidFileType   ErrorKind = "invalid_file_type"
	KindInvalidJSON       ErrorKind = "invalid_json"
	KindNotAnArray        ErrorKind = "not_an_array"
	KindNoHighlightsFound ErrorKind = "no_highlights_found"
	KindNoValidHighlights ErrorKind = "no_valid_highlights"
	KindTooManyHighlights ErrorKind = "too_many_highlights"
	KindStorageError      ErrorKind = "storage_error"
	KindDeleteFailed      ErrorKind = "delete_failed"
)

// Error is the typed failure returned by ImportService and HighlightService.
// Params carries message parameters (e.g. "Limit" for KindTooManyHighlights).
// Err holds internal detail for logs and must not be shown to users.
type Error struct {
	Kind   ErrorKind
	Params map[string]any
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, params map[string]any) *Error {
	return &Error{Kind: kind, Params: params, Err: err}
}

// KindOf returns the kind of a services error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AsError unwraps err into a services error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
