package compiler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateErrorMessage(t *testing.T) {
	withField := &TranslateError{Code: ErrCodeMalformedInput, Field: "where", Message: "missing"}
	assert.Equal(t, "MALFORMED_INPUT: where: missing", withField.Error())

	bare := &TranslateError{Code: ErrCodeUnrecognizedSelector, Message: "unrecognized selector format: x"}
	assert.Equal(t, "UNRECOGNIZED_SELECTOR: unrecognized selector format: x", bare.Error())
}

func TestTranslateErrorWrapped(t *testing.T) {
	cause := errors.New("json: bad")
	err := fmt.Errorf("value p1: %w", malformed("{", "", "invalid filter JSON", cause))

	assert.True(t, IsMalformedInput(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsMalformedInput(errors.New("other")))
	assert.False(t, IsUnrecognizedSelector(nil))
}
