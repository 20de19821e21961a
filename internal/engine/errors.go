package engine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes migration failures.
type ErrorCode string

const (
	// ErrCodeSourceFailed indicates a legacy read failed.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"

	// ErrCodeBuildFailed indicates ops could not be assembled.
	ErrCodeBuildFailed ErrorCode = "BUILD_FAILED"

	// ErrCodeSinkFailed indicates an edit could not be written.
	ErrCodeSinkFailed ErrorCode = "SINK_FAILED"
)

// MigrationError reports where a migration stopped.
type MigrationError struct {
	Code     ErrorCode
	SpaceID  string
	EntityID string // empty for space-level failures
	Err      error
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s: %v (space=%s, entity=%s)", e.Code, e.Err, e.SpaceID, e.EntityID)
	}
	if e.SpaceID != "" {
		return fmt.Sprintf("%s: %v (space=%s)", e.Code, e.Err, e.SpaceID)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// IsSourceError returns true if err is a failed legacy read.
// Uses errors.As to handle wrapped errors.
func IsSourceError(err error) bool {
	return hasCode(err, ErrCodeSourceFailed)
}

// IsBuildError returns true if err is a failed op assembly.
func IsBuildError(err error) bool {
	return hasCode(err, ErrCodeBuildFailed)
}

// IsSinkError returns true if err is a failed edit write.
func IsSinkError(err error) bool {
	return hasCode(err, ErrCodeSinkFailed)
}

func hasCode(err error, code ErrorCode) bool {
	var me *MigrationError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}

func sourceError(space, entity string, err error) *MigrationError {
	return &MigrationError{Code: ErrCodeSourceFailed, SpaceID: space, EntityID: entity, Err: err}
}

func buildError(space, entity string, err error) *MigrationError {
	return &MigrationError{Code: ErrCodeBuildFailed, SpaceID: space, EntityID: entity, Err: err}
}

func sinkError(space string, err error) *MigrationError {
	return &MigrationError{Code: ErrCodeSinkFailed, SpaceID: space, Err: err}
}
