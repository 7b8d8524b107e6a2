package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// retryDelays is the backoff schedule for transient storage errors.
// After the last delay the operation fails with ErrStorageUnavailable.
var retryDelays = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
}

// isTransient reports whether err is a retryable SQLite condition
// (database busy or table locked).
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageTransient) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

// withRetry runs fn, retrying transient failures with exponential backoff.
// Non-transient errors are returned as-is on the first occurrence.
func (s *Store) withRetry(op string, fn func() error) error {
	var err error
	for _, delay := range retryDelays {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		time.Sleep(delay)
	}
	// One final attempt after the last backoff interval.
	err = fn()
	if err == nil || !isTransient(err) {
		return err
	}
	return fmt.Errorf("%s: retry budget exhausted: %v: %w", op, err, ErrStorageUnavailable)
}
