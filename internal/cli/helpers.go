package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Randhum/TimeClock/internal/config"
	"github.com/Randhum/TimeClock/internal/model"
	"github.com/Randhum/TimeClock/internal/store"
)

// loadConfig resolves the effective configuration for a command,
// applying the --db override on top of the file and environment.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitConfigError, "invalid configuration", err)
	}
	if opts.Database != "" {
		cfg.DatabasePath = opts.Database
	}
	return cfg, nil
}

// openStore opens the database, mapping failure to the fatal exit code.
func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, WrapExitError(ExitFatal, "failed to open database", err)
	}
	return st, nil
}

// selectEmployee resolves exactly one active employee from a partial
// name or an exact tag. Ambiguous name matches list the candidates.
func selectEmployee(ctx context.Context, st *store.Store, name, tag string) (model.Employee, error) {
	switch {
	case tag != "":
		emp, err := st.GetEmployeeByTag(ctx, tag)
		if err != nil {
			return model.Employee{}, err
		}
		if emp == nil {
			return model.Employee{}, fmt.Errorf("no active employee with tag %s", tag)
		}
		return *emp, nil

	case name != "":
		matches, err := st.FindEmployeesByName(ctx, name)
		if err != nil {
			return model.Employee{}, err
		}
		switch len(matches) {
		case 0:
			return model.Employee{}, fmt.Errorf("no active employee matching %q", name)
		case 1:
			return matches[0], nil
		default:
			names := ""
			for _, m := range matches {
				names += fmt.Sprintf("\n  %d: %s (%s)", m.ID, m.Name, m.RFIDTag)
			}
			return model.Employee{}, fmt.Errorf("name %q is ambiguous, matches:%s", name, names)
		}

	default:
		return model.Employee{}, fmt.Errorf("one of --name or --tag is required")
	}
}

// parseTimestamp accepts the timestamp layouts the maintenance tools
// take on the command line.
func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// parseDate accepts a plain local calendar date.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

const displayTimeLayout = "2006-01-02 15:04:05"
