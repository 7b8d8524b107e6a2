// Package export renders the raw-entries CSV and resolves where exports
// land: an explicit TIME_CLOCK_EXPORT_PATH, the first mounted USB drive,
// or a local exports directory.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Randhum/TimeClock/internal/store"
)

// csvHeader is the raw-entries contract: semicolon-separated, UTF-8,
// \n newlines, active entries only, ordered by timestamp descending.
const csvHeader = "entry_id;employee_id;employee_name;rfid_tag;timestamp_iso8601;action;active"

const timestampISO8601 = "2006-01-02T15:04:05"

// RenderEntriesCSV renders export rows to the raw-entries CSV format.
// The rows come from Store.EntriesForExport already ordered; nothing is
// reordered here.
//
// encoding/csv is deliberately not used: the contract fixes the
// separator, quoting and line endings, and csv.Writer would quote
// fields containing semicolons.
func RenderEntriesCSV(rows []store.ExportRow) []byte {
	var b bytes.Buffer
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, row := range rows {
		fmt.Fprintf(&b, "%d;%d;%s;%s;%s;%s;%t\n",
			row.EntryID,
			row.EmployeeID,
			row.EmployeeName,
			row.RFIDTag,
			row.Timestamp.Format(timestampISO8601),
			row.Action,
			row.Active,
		)
	}
	return b.Bytes()
}

// WriteExport writes data into dir under name, creating the directory
// if needed. Returns the full path written.
func WriteExport(data []byte, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
