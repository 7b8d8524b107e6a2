package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Randhum/TimeClock/internal/model"
)

const entryColumns = "id, employee_id, timestamp, action, active"

// Timestamps may not stray more than a year into the past or a day into
// the future. Catches obvious host clock errors before they hit the ledger.
const (
	maxTimestampPast   = 365 * 24 * time.Hour
	maxTimestampFuture = 24 * time.Hour
)

func (s *Store) validateTimestamp(ts time.Time) error {
	now := s.now()
	if ts.Before(now.Add(-maxTimestampPast)) || ts.After(now.Add(maxTimestampFuture)) {
		return fmt.Errorf("timestamp %s outside permitted range: %w",
			ts.Format(entryTimeLayout), model.ErrInvalidInput)
	}
	return nil
}

// LastActiveEntry returns the employee's last active entry ordered by
// (timestamp, id), or (nil, nil) when the employee has none.
func (s *Store) LastActiveEntry(ctx context.Context, employeeID int64) (*model.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE employee_id = ? AND active = 1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, employeeID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last active entry: %w", err)
	}
	return &entry, nil
}

// CreateTimeEntry records a clock action for the employee at the given
// timestamp. The action is determined from the last active entry and the
// insert happens in the same critical section, under the employee's lock,
// so two concurrent scans of one badge cannot both record 'in'.
func (s *Store) CreateTimeEntry(ctx context.Context, emp model.Employee, ts time.Time) (model.TimeEntry, error) {
	if !emp.Active {
		return model.TimeEntry{}, fmt.Errorf("create time entry: employee %d: %w", emp.ID, ErrInactiveEmployee)
	}
	if err := s.validateTimestamp(ts); err != nil {
		return model.TimeEntry{}, fmt.Errorf("create time entry: %w", err)
	}

	lock := s.locks.forEmployee(emp.ID)
	lock.Lock()
	defer lock.Unlock()

	entry := model.TimeEntry{
		EmployeeID: emp.ID,
		Timestamp:  ts,
		Active:     true,
	}
	err := s.transact(ctx, "create time entry", func(tx *sql.Tx) error {
		last, err := lastActiveEntryTx(ctx, tx, emp.ID)
		if err != nil {
			return err
		}

		entry.Action = model.ActionIn
		if last != nil && last.Action == model.ActionIn {
			entry.Action = model.ActionOut
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO time_entries (employee_id, timestamp, action, active)
			VALUES (?, ?, ?, 1)
		`, emp.ID, formatEntryTime(ts), string(entry.Action))
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		entry.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.TimeEntry{}, err
	}
	return entry, nil
}

// InsertManualEntry inserts an entry at an arbitrary timestamp. The
// action follows from the row's chronological position among the
// employee's active entries; a row inserted with a timestamp equal to an
// existing one sorts after it, because the new row receives the next id.
//
// The insert commits on its own; the recalculation that repairs
// alternation for entries after the insertion point runs afterwards. If
// recalculation fails the returned entry is still valid and the error
// wraps ErrRecalculationFailed.
func (s *Store) InsertManualEntry(ctx context.Context, emp model.Employee, ts time.Time) (model.TimeEntry, error) {
	if !emp.Active {
		return model.TimeEntry{}, fmt.Errorf("insert manual entry: employee %d: %w", emp.ID, ErrInactiveEmployee)
	}
	if err := s.validateTimestamp(ts); err != nil {
		return model.TimeEntry{}, fmt.Errorf("insert manual entry: %w", err)
	}

	lock := s.locks.forEmployee(emp.ID)
	lock.Lock()
	defer lock.Unlock()

	entry := model.TimeEntry{
		EmployeeID: emp.ID,
		Timestamp:  ts,
		Active:     true,
	}
	err := s.transact(ctx, "insert manual entry", func(tx *sql.Tx) error {
		var predecessors int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM time_entries
			WHERE employee_id = ? AND active = 1 AND timestamp <= ?
		`, emp.ID, formatEntryTime(ts)).Scan(&predecessors); err != nil {
			return fmt.Errorf("count predecessors: %w", err)
		}

		entry.Action = model.ActionIn
		if predecessors%2 == 1 {
			entry.Action = model.ActionOut
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO time_entries (employee_id, timestamp, action, active)
			VALUES (?, ?, ?, 1)
		`, emp.ID, formatEntryTime(ts), string(entry.Action))
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		entry.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.TimeEntry{}, err
	}

	if _, err := s.recalculateLocked(ctx, emp.ID); err != nil {
		return entry, fmt.Errorf("insert manual entry: %v: %w", err, ErrRecalculationFailed)
	}
	// Recalculation may have rewritten the new row's action.
	if final, err := s.entryByID(ctx, entry.ID); err == nil {
		entry = final
	}
	return entry, nil
}

// SoftDeleteEntries toggles active=0 on the given entry ids and triggers
// recalculation for every affected employee. Returns the number of
// entries deleted.
//
// Deletions are grouped per employee and run under that employee's lock.
// A recalculation failure does not undo the delete; the returned error
// wraps ErrRecalculationFailed while the count stays accurate.
func (s *Store) SoftDeleteEntries(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	byEmployee, err := s.groupEntriesByEmployee(ctx, ids)
	if err != nil {
		return 0, err
	}

	var (
		deleted    int64
		recalcErrs []error
	)
	for employeeID, entryIDs := range byEmployee {
		lock := s.locks.forEmployee(employeeID)
		lock.Lock()

		err := s.transact(ctx, "soft delete entries", func(tx *sql.Tx) error {
			res, err := tx.ExecContext(ctx, `
				UPDATE time_entries SET active = 0
				WHERE active = 1 AND id IN (`+placeholders(len(entryIDs))+`)
			`, int64Args(entryIDs)...)
			if err != nil {
				return fmt.Errorf("update active: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			deleted += n
			return nil
		})
		if err != nil {
			lock.Unlock()
			return deleted, err
		}

		if _, err := s.recalculateLocked(ctx, employeeID); err != nil {
			recalcErrs = append(recalcErrs,
				fmt.Errorf("employee %d: %v: %w", employeeID, err, ErrRecalculationFailed))
		}
		lock.Unlock()
	}

	return deleted, errors.Join(recalcErrs...)
}

// ListEntries returns the employee's active entries ordered by
// (timestamp ASC, id ASC). Zero since/until leave that bound open; both
// bounds are inclusive.
func (s *Store) ListEntries(ctx context.Context, employeeID int64, since, until time.Time) ([]model.TimeEntry, error) {
	query := `
		SELECT ` + entryColumns + ` FROM time_entries
		WHERE employee_id = ? AND active = 1`
	args := []any{employeeID}
	if !since.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, formatEntryTime(since))
	}
	if !until.IsZero() {
		query += ` AND timestamp <= ?`
		args = append(args, formatEntryTime(until))
	}
	query += ` ORDER BY timestamp ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []model.TimeEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *Store) entryByID(ctx context.Context, id int64) (model.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries WHERE id = ?
	`, id)
	entry, err := scanEntry(row)
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("entry by id: %w", err)
	}
	return entry, nil
}

// groupEntriesByEmployee resolves which active entries exist among ids
// and groups them by owning employee.
func (s *Store) groupEntriesByEmployee(ctx context.Context, ids []int64) (map[int64][]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id FROM time_entries
		WHERE active = 1 AND id IN (`+placeholders(len(ids))+`)
	`, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("group entries: %w", err)
	}
	defer rows.Close()

	byEmployee := make(map[int64][]int64)
	for rows.Next() {
		var entryID, employeeID int64
		if err := rows.Scan(&entryID, &employeeID); err != nil {
			return nil, fmt.Errorf("group entries: %w", err)
		}
		byEmployee[employeeID] = append(byEmployee[employeeID], entryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("group entries: %w", err)
	}
	return byEmployee, nil
}

func lastActiveEntryTx(ctx context.Context, tx *sql.Tx, employeeID int64) (*model.TimeEntry, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE employee_id = ? AND active = 1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, employeeID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last active entry: %w", err)
	}
	return &entry, nil
}

func scanEntry(r rowScanner) (model.TimeEntry, error) {
	var (
		entry  model.TimeEntry
		ts     string
		action string
		active int
	)
	if err := r.Scan(&entry.ID, &entry.EmployeeID, &ts, &action, &active); err != nil {
		return model.TimeEntry{}, err
	}
	parsed, err := parseEntryTime(ts)
	if err != nil {
		return model.TimeEntry{}, err
	}
	entry.Timestamp = parsed
	entry.Action = model.Action(action)
	entry.Active = active != 0
	return entry, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
