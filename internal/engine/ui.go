package engine

import (
	"log/slog"

	"github.com/Randhum/TimeClock/internal/model"
)

// UI is the surface the core pushes results onto. The touchscreen GUI
// implements it with popups and screen switches; headless runs use LogUI.
//
// All methods are invoked on the dispatcher goroutine.
type UI interface {
	// ShowError displays an error popup.
	ShowError(title, message string)

	// ShowInfo displays an informational popup.
	ShowInfo(title, message string)

	// ShowGreeting announces a successful clock action.
	ShowGreeting(result ClockResult)

	// TagCaptured stashes a fresh tag on the registration form.
	TagCaptured(tag string)

	// ShowIdentity displays name/role/tag for a scanned badge.
	ShowIdentity(emp model.Employee)

	// EntryEditorUnlocked opens the entry editor for the identified
	// employee.
	EntryEditorUnlocked(emp model.Employee)

	// ModeChanged reports a mode switch initiated by the core (admin
	// badge scanned, pending identification expired).
	ModeChanged(mode Mode)
}

// LogUI writes every UI event to the log. Used by the headless kiosk
// run and as a safe default.
type LogUI struct {
	Logger *slog.Logger
}

func (u LogUI) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}

func (u LogUI) ShowError(title, message string) {
	u.logger().Warn("ui error", "title", title, "message", message)
}

func (u LogUI) ShowInfo(title, message string) {
	u.logger().Info("ui info", "title", title, "message", message)
}

func (u LogUI) ShowGreeting(result ClockResult) {
	u.logger().Info("ui greeting",
		"employee", result.Employee.Name,
		"action", result.Action,
	)
}

func (u LogUI) TagCaptured(tag string) {
	u.logger().Info("ui tag captured", "tag", tag)
}

func (u LogUI) ShowIdentity(emp model.Employee) {
	u.logger().Info("ui identity",
		"employee", emp.Name,
		"admin", emp.IsAdmin,
		"tag", emp.RFIDTag,
	)
}

func (u LogUI) EntryEditorUnlocked(emp model.Employee) {
	u.logger().Info("ui entry editor unlocked", "employee", emp.Name)
}

func (u LogUI) ModeChanged(mode Mode) {
	u.logger().Info("ui mode changed", "mode", mode.String())
}
