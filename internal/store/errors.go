package store

import "errors"

// Error kinds surfaced by the store. Callers classify with errors.Is;
// every exported operation wraps one of these (or model.ErrInvalidInput)
// when it fails for a domain reason rather than an I/O one.
var (
	// ErrDuplicateTag is returned by CreateEmployee when any employee,
	// active or inactive, already carries the tag.
	ErrDuplicateTag = errors.New("rfid tag already registered")

	// ErrInactiveEmployee is returned when a write targets a retired
	// employee.
	ErrInactiveEmployee = errors.New("employee is inactive")

	// ErrFirstUserMustBeAdmin is returned when the very first employee
	// would be created without the admin flag.
	ErrFirstUserMustBeAdmin = errors.New("first employee must be an admin")

	// ErrEmployeeNotFound is returned by lookups that require a match.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrStorageTransient classifies retryable SQLite busy/locked
	// conditions. It is internal to the retry layer and should not
	// reach callers.
	ErrStorageTransient = errors.New("transient storage error")

	// ErrStorageUnavailable is returned once the retry budget is
	// exhausted.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrRecalculationFailed marks a failed action recalculation. The
	// primary operation has already committed when this is reported;
	// callers log and continue.
	ErrRecalculationFailed = errors.New("action recalculation failed")
)
