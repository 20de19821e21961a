package compiler

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes translation errors.
type ErrorCode string

const (
	// ErrCodeMalformedInput means a filter did not parse or did not have
	// the expected shape.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeUnrecognizedSelector means a selector matched no production.
	ErrCodeUnrecognizedSelector ErrorCode = "UNRECOGNIZED_SELECTOR"
)

// TranslateError is returned by TranslateFilter and TranslateSelector.
// No partial result accompanies it.
type TranslateError struct {
	Code    ErrorCode
	Field   string // offending field path, empty for whole-input errors
	Message string
	Input   string
	Err     error
}

func (e *TranslateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TranslateError) Unwrap() error {
	return e.Err
}

// IsMalformedInput reports whether err is a malformed-filter error.
func IsMalformedInput(err error) bool {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.Code == ErrCodeMalformedInput
	}
	return false
}

// IsUnrecognizedSelector reports whether err is an unrecognized-selector
// error.
func IsUnrecognizedSelector(err error) bool {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.Code == ErrCodeUnrecognizedSelector
	}
	return false
}

func malformed(input, field, msg string, err error) *TranslateError {
	return &TranslateError{Code: ErrCodeMalformedInput, Field: field, Message: msg, Input: input, Err: err}
}
