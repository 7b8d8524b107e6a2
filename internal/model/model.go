package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidInput marks validation failures on names, tags and timestamps.
// Check with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Action is a recorded clock direction.
type Action string

const (
	ActionIn  Action = "in"
	ActionOut Action = "out"
)

// Opposite returns the alternating counterpart of the action.
func (a Action) Opposite() Action {
	if a == ActionIn {
		return ActionOut
	}
	return ActionIn
}

// Valid reports whether the action is one of the two known values.
func (a Action) Valid() bool {
	return a == ActionIn || a == ActionOut
}

// Employee is a badge holder. Employees are never physically deleted;
// retiring one sets Active to false.
type Employee struct {
	ID        int64
	Name      string
	RFIDTag   string
	IsAdmin   bool
	CreatedAt time.Time
	Active    bool
}

// TimeEntry is one row of the append-only attendance ledger.
// Inactive entries are invisible to every query and report.
type TimeEntry struct {
	ID         int64
	EmployeeID int64
	Timestamp  time.Time
	Action     Action
	Active     bool
}

// Name and tag limits match the persisted column contracts.
const (
	maxNameLen = 100
	minTagLen  = 4
	maxTagLen  = 50
)

// ValidateName normalises an employee name to NFC, trims surrounding
// whitespace and checks the 1-100 printable character contract.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(norm.NFC.String(raw))
	if name == "" {
		return "", fmt.Errorf("employee name cannot be empty: %w", ErrInvalidInput)
	}
	if n := len([]rune(name)); n > maxNameLen {
		return "", fmt.Errorf("employee name exceeds %d characters (%d): %w", maxNameLen, n, ErrInvalidInput)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("employee name contains non-printable character %q: %w", r, ErrInvalidInput)
		}
	}
	return name, nil
}

// NormalizeTag uppercases a raw tag read and checks the wire contract:
// hexadecimal ASCII, 4-50 characters. Hardware readers may emit
// lowercase or padded forms; everything funnels through here on ingest.
func NormalizeTag(raw string) (string, error) {
	tag := strings.ToUpper(strings.TrimSpace(raw))
	if len(tag) < minTagLen || len(tag) > maxTagLen {
		return "", fmt.Errorf("tag %q length %d outside %d-%d: %w", tag, len(tag), minTagLen, maxTagLen, ErrInvalidInput)
	}
	for _, r := range tag {
		if !isHexDigit(r) {
			return "", fmt.Errorf("tag %q contains non-hex character %q: %w", tag, r, ErrInvalidInput)
		}
	}
	return tag, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}
