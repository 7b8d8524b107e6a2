package engine

import (
	"errors"
	"fmt"
)

// ScanError represents a scan that could not be turned into an action.
//
// Scan errors include:
//   - Unknown tag: no active employee carries the scanned tag
//   - Identification mismatch: the scanned tag does not belong to the
//     employee whose data is being edited
//
// ScanError includes structured fields for diagnostics and the UI layer.
type ScanError struct {
	// Code identifies the error category.
	Code ScanErrorCode

	// Message is a human-readable description.
	Message string

	// Tag is the normalised tag that triggered the error.
	Tag string

	// Token is the scan correlation token.
	Token string
}

// ScanErrorCode categorizes scan errors.
type ScanErrorCode string

const (
	// ErrCodeUnknownTag indicates no active employee for the tag.
	ErrCodeUnknownTag ScanErrorCode = "UNKNOWN_TAG"

	// ErrCodeIdentificationMismatch indicates the scanned tag does not
	// match the pending identification request.
	ErrCodeIdentificationMismatch ScanErrorCode = "IDENTIFICATION_MISMATCH"
)

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: %s (tag=%s)", e.Code, e.Message, e.Tag)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownTag returns true if the error is an unknown-tag error.
// Uses errors.As to handle wrapped errors.
func IsUnknownTag(err error) bool {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnknownTag
	}
	return false
}

// IsIdentificationMismatch returns true for pending-identification
// mismatch errors.
func IsIdentificationMismatch(err error) bool {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code == ErrCodeIdentificationMismatch
	}
	return false
}

// NewUnknownTagError creates a ScanError for an unrecognised tag.
func NewUnknownTagError(tag, token string) *ScanError {
	return &ScanError{
		Code:    ErrCodeUnknownTag,
		Message: "no active employee for tag",
		Tag:     tag,
		Token:   token,
	}
}

// NewIdentificationMismatchError creates a ScanError for a badge that
// does not match the employee whose entries are being edited.
func NewIdentificationMismatchError(tag, token string) *ScanError {
	return &ScanError{
		Code:    ErrCodeIdentificationMismatch,
		Message: "scanned badge does not match the pending identification",
		Tag:     tag,
		Token:   token,
	}
}
