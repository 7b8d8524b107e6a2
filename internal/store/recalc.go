package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Randhum/TimeClock/internal/model"
)

// Recalculate rewrites the action fields of one employee's active
// entries so the (timestamp ASC, id ASC) sequence alternates in, out,
// in, out starting with 'in'. Returns the number of rewritten rows.
//
// Invoked after any operation that changes the ordering of an employee's
// active entries: manual insert, soft delete, timestamp edit. Only the
// one affected employee is touched; the store is never rescanned.
func (s *Store) Recalculate(ctx context.Context, employeeID int64) (int, error) {
	lock := s.locks.forEmployee(employeeID)
	lock.Lock()
	defer lock.Unlock()

	return s.recalculateLocked(ctx, employeeID)
}

// recalculateLocked is Recalculate without lock acquisition, for callers
// already inside the employee's critical section.
//
// The sequence is scanned first; when it already alternates correctly no
// write transaction is opened and nothing is logged.
func (s *Store) recalculateLocked(ctx context.Context, employeeID int64) (int, error) {
	entries, err := s.ListEntries(ctx, employeeID, zeroTime, zeroTime)
	if err != nil {
		return 0, fmt.Errorf("recalculate: %w", err)
	}

	type fix struct {
		id     int64
		action model.Action
	}
	var fixes []fix

	expected := model.ActionIn
	for _, entry := range entries {
		if entry.Action != expected {
			fixes = append(fixes, fix{id: entry.ID, action: expected})
		}
		expected = expected.Opposite()
	}

	if len(fixes) == 0 {
		return 0, nil
	}

	err = s.transact(ctx, "recalculate actions", func(tx *sql.Tx) error {
		for _, f := range fixes {
			if _, err := tx.ExecContext(ctx, `
				UPDATE time_entries SET action = ? WHERE id = ?
			`, string(f.action), f.id); err != nil {
				return fmt.Errorf("update entry %d: %w", f.id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(fixes), nil
}
