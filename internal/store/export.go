package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Randhum/TimeClock/internal/model"
)

// ExportRow is one line of the raw-entries export: an active entry
// joined with its (active) employee.
type ExportRow struct {
	EntryID      int64
	EmployeeID   int64
	EmployeeName string
	RFIDTag      string
	Timestamp    time.Time
	Action       model.Action
	Active       bool
}

// EntriesForExport returns all active entries of active employees,
// ordered by timestamp DESC with id DESC breaking ties.
func (s *Store) EntriesForExport(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, e.id, e.name, e.rfid_tag, t.timestamp, t.action, t.active
		FROM time_entries t
		JOIN employees e ON t.employee_id = e.id
		WHERE t.active = 1 AND e.active = 1
		ORDER BY t.timestamp DESC, t.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("entries for export: %w", err)
	}
	defer rows.Close()

	result := []ExportRow{}
	for rows.Next() {
		var (
			row    ExportRow
			ts     string
			action string
			active int
		)
		if err := rows.Scan(&row.EntryID, &row.EmployeeID, &row.EmployeeName,
			&row.RFIDTag, &ts, &action, &active); err != nil {
			return nil, fmt.Errorf("entries for export: %w", err)
		}
		parsed, err := parseEntryTime(ts)
		if err != nil {
			return nil, fmt.Errorf("entries for export: %w", err)
		}
		row.Timestamp = parsed
		row.Action = model.Action(action)
		row.Active = active != 0
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entries for export: %w", err)
	}
	return result, nil
}
