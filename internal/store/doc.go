// Package store provides SQLite-backed durable storage for employees and
// the time entry ledger.
//
// The store implements an append-only ledger with:
//   - Employees: badge holders, soft-deleted by clearing active
//   - Time entries: clock in/out records, soft-deleted the same way
//
// # Critical Patterns
//
// Per-employee serialisation
//   - Every read-then-write on one employee's entries holds that
//     employee's mutex for the full transaction
//   - Action determination and insert share one critical section
//
// Deterministic ordering
//   - All entry queries order by (timestamp ASC, id ASC)
//   - The alternation invariant is defined over exactly that order
//
// Soft delete
//   - active=0 rows are invisible to every query and report, forever
//   - Deletion triggers action recalculation for the affected employee
//
// Transient errors
//   - Busy/locked conditions retry with 50/100/200/400 ms backoff
//   - Exhausting the budget surfaces ErrStorageUnavailable
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
