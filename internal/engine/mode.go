package engine

// Mode is the UI adapter's current screen. The scan router uses it to
// decide what a tag read means.
type Mode int

const (
	// ModeTimeclock is the default kiosk screen; scans clock in/out.
	ModeTimeclock Mode = iota
	// ModeRegister captures scanned tags onto the registration form.
	ModeRegister
	// ModeIdentify displays name/role/tag for a scanned badge; read-only.
	ModeIdentify
	// ModeAdmin is the administration screen.
	ModeAdmin
	// ModeEntryEditPending waits for a badge scan confirming whose
	// entries are about to be edited.
	ModeEntryEditPending
)

func (m Mode) String() string {
	switch m {
	case ModeTimeclock:
		return "timeclock"
	case ModeRegister:
		return "register"
	case ModeIdentify:
		return "identify"
	case ModeAdmin:
		return "admin"
	case ModeEntryEditPending:
		return "entry_edit_pending"
	default:
		return "unknown"
	}
}
