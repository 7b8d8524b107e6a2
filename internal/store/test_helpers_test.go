package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Randhum/TimeClock/internal/model"
)

// createTestStore creates a file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestAdmin satisfies the first-run policy so regular employees
// can be created afterwards.
func createTestAdmin(t *testing.T, s *Store) model.Employee {
	t.Helper()
	admin, err := s.CreateEmployee(context.Background(), "Test Admin", "AD000001", true)
	if err != nil {
		t.Fatalf("CreateEmployee(admin) failed: %v", err)
	}
	return admin
}

// createTestEmployee creates a regular employee (after ensuring an
// admin exists).
func createTestEmployee(t *testing.T, s *Store, name, tag string) model.Employee {
	t.Helper()
	ctx := context.Background()
	if n, err := s.GetAdminCount(ctx); err != nil {
		t.Fatalf("GetAdminCount() failed: %v", err)
	} else if n == 0 {
		createTestAdmin(t, s)
	}
	emp, err := s.CreateEmployee(ctx, name, tag, false)
	if err != nil {
		t.Fatalf("CreateEmployee(%q) failed: %v", name, err)
	}
	return emp
}

// freezeNow pins the store's clock so timestamp validation is relative
// to a fixed instant instead of the wall clock.
func freezeNow(t *testing.T, s *Store, value string) {
	t.Helper()
	now := at(t, value)
	s.now = func() time.Time { return now }
}

// at builds a local timestamp on a fixed test day.
func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

// actionsOf extracts the action sequence of entries.
func actionsOf(entries []model.TimeEntry) []model.Action {
	actions := make([]model.Action, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	return actions
}

// assertAlternates fails unless actions go in, out, in, out, ...
func assertAlternates(t *testing.T, entries []model.TimeEntry) {
	t.Helper()
	expected := model.ActionIn
	for i, e := range entries {
		if e.Action != expected {
			t.Fatalf("entry %d (id %d): action = %q, want %q; sequence %v",
				i, e.ID, e.Action, expected, actionsOf(entries))
		}
		expected = expected.Opposite()
	}
}
