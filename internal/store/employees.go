package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Randhum/TimeClock/internal/model"
)

const employeeColumns = "id, name, rfid_tag, is_admin, created_at, active"

// CreateEmployee validates and inserts a new employee.
//
// Fails with ErrDuplicateTag if any employee, active or inactive, already
// carries the tag, and with ErrFirstUserMustBeAdmin when the store holds
// no admin yet and isAdmin is false (first-run enforcement).
func (s *Store) CreateEmployee(ctx context.Context, name, tag string, isAdmin bool) (model.Employee, error) {
	name, err := model.ValidateName(name)
	if err != nil {
		return model.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	tag, err = model.NormalizeTag(tag)
	if err != nil {
		return model.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	emp := model.Employee{
		Name:      name,
		RFIDTag:   tag,
		IsAdmin:   isAdmin,
		CreatedAt: s.now().UTC(),
		Active:    true,
	}

	err = s.transact(ctx, "create employee", func(tx *sql.Tx) error {
		var admins int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM employees WHERE is_admin = 1 AND active = 1
		`).Scan(&admins); err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins == 0 && !isAdmin {
			return ErrFirstUserMustBeAdmin
		}

		// Uniqueness is total across active and inactive rows. The unique
		// index backs this up; checking first gives a typed error instead
		// of a constraint failure.
		var existing int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM employees WHERE rfid_tag = ?
		`, tag).Scan(&existing); err != nil {
			return fmt.Errorf("check tag: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("tag %s: %w", tag, ErrDuplicateTag)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO employees (name, rfid_tag, is_admin, created_at, active)
			VALUES (?, ?, ?, ?, 1)
		`, name, tag, boolToInt(isAdmin), emp.CreatedAt.Format(createdAtLayout))
		if err != nil {
			return fmt.Errorf("insert employee: %w", err)
		}
		emp.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.Employee{}, fmt.Errorf("create employee: tag %s: %w", tag, ErrDuplicateTag)
		}
		return model.Employee{}, err
	}
	return emp, nil
}

// GetEmployeeByTag returns the active employee carrying the tag, or
// (nil, nil) when no active employee matches. The tag is normalised
// before lookup.
func (s *Store) GetEmployeeByTag(ctx context.Context, tag string) (*model.Employee, error) {
	tag, err := model.NormalizeTag(tag)
	if err != nil {
		return nil, fmt.Errorf("get employee by tag: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE rfid_tag = ? AND active = 1
	`, tag)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by tag: %w", err)
	}
	return &emp, nil
}

// GetEmployeeByID returns the employee with the given id regardless of
// active flag. Maintenance tooling needs to see retired employees.
func (s *Store) GetEmployeeByID(ctx context.Context, id int64) (model.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE id = ?
	`, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Employee{}, fmt.Errorf("employee %d: %w", id, ErrEmployeeNotFound)
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("get employee by id: %w", err)
	}
	return emp, nil
}

// ListEmployees returns employees ordered by name, then id for ties.
// Inactive employees are included only when requested.
func (s *Store) ListEmployees(ctx context.Context, includeInactive bool) ([]model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// FindEmployeesByName returns active employees whose name contains the
// given fragment, case-insensitively, ordered by name.
func (s *Store) FindEmployeesByName(ctx context.Context, fragment string) ([]model.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE active = 1 AND name LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY name ASC, id ASC
	`, "%"+escapeLike(fragment)+"%")
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("find employees: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	return employees, nil
}

// GetAdminCount returns the number of active admin employees.
// Used for first-run enforcement.
func (s *Store) GetAdminCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM employees WHERE is_admin = 1 AND active = 1
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("get admin count: %w", err)
	}
	return count, nil
}

// RenameEmployee updates an employee's name after validation.
func (s *Store) RenameEmployee(ctx context.Context, id int64, newName string) (model.Employee, error) {
	newName, err := model.ValidateName(newName)
	if err != nil {
		return model.Employee{}, fmt.Errorf("rename employee: %w", err)
	}

	err = s.transact(ctx, "rename employee", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE employees SET name = ? WHERE id = ?
		`, newName, id)
		if err != nil {
			return fmt.Errorf("update name: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("employee %d: %w", id, ErrEmployeeNotFound)
		}
		return nil
	})
	if err != nil {
		return model.Employee{}, err
	}
	return s.GetEmployeeByID(ctx, id)
}

// DeactivateEmployee retires an employee (soft delete). Existing entries
// stay untouched; the employee can no longer clock.
func (s *Store) DeactivateEmployee(ctx context.Context, id int64) error {
	return s.transact(ctx, "deactivate employee", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE employees SET active = 0 WHERE id = ?
		`, id)
		if err != nil {
			return fmt.Errorf("update active: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("employee %d: %w", id, ErrEmployeeNotFound)
		}
		return nil
	})
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(r rowScanner) (model.Employee, error) {
	var (
		emp       model.Employee
		isAdmin   int
		active    int
		createdAt string
	)
	if err := r.Scan(&emp.ID, &emp.Name, &emp.RFIDTag, &isAdmin, &createdAt, &active); err != nil {
		return model.Employee{}, err
	}
	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return model.Employee{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	emp.IsAdmin = isAdmin != 0
	emp.Active = active != 0
	emp.CreatedAt = ts
	return emp, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// escapeLike escapes LIKE metacharacters in a user-supplied fragment.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
